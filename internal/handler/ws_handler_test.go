package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/donorhub/donorhub/internal/config"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/hub"
	"github.com/donorhub/donorhub/pkg/jwt"
)

// stubChatService confirms joins and records nothing else; the gateway
// semantics have their own tests.
type stubChatService struct{}

func (s *stubChatService) HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string) error {
	return c.SendMessage(&domain.RoomEvent{Type: domain.EventRoomJoined, RoomID: roomID})
}

func (s *stubChatService) HandleLeaveRoom(ctx context.Context, c *hub.Client, roomID string) error {
	return c.SendMessage(&domain.RoomEvent{Type: domain.EventRoomLeft, RoomID: roomID})
}

func (s *stubChatService) HandleSendMessage(ctx context.Context, c *hub.Client, event *domain.SendMessageEvent) error {
	return nil
}

func (s *stubChatService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	return nil
}

func wsTestServer(t *testing.T) (*httptest.Server, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := jwt.NewManager("test-secret", time.Hour, "donorhub-test")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}
	h := hub.NewHub(cfg)
	go h.Run()

	wsHandler := NewWSHandler(h, &stubChatService{}, cfg, tokens)

	r := gin.New()
	r.GET("/ws", wsHandler.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	srv, _ := wsTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial without token succeeded, want handshake rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %v, want 401", resp)
	}
}

func TestWebSocketRejectsInvalidToken(t *testing.T) {
	srv, _ := wsTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=not-a-token", nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial with garbage token succeeded, want handshake rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %v, want 401", resp)
	}
}

func TestWebSocketAcceptsValidToken(t *testing.T) {
	srv, tokens := wsTestServer(t)

	token, _, err := tokens.GenerateToken("user-1", "user@example.com", "Test User", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(&domain.JoinRoomEvent{Type: domain.EventJoinRoom, RoomID: "req-1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["type"] != domain.EventRoomJoined || got["room_id"] != "req-1" {
		t.Fatalf("event = %v, want room_joined req-1", got)
	}
}

func TestWebSocketAcceptsBearerHeader(t *testing.T) {
	srv, tokens := wsTestServer(t)

	token, _, err := tokens.GenerateToken("user-1", "user@example.com", "Test User", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("dial with bearer header: %v", err)
	}
	conn.Close()
}
