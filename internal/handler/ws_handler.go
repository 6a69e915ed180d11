package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/donorhub/donorhub/internal/config"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/hub"
	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/jwt"
	"github.com/donorhub/donorhub/pkg/log"
	"github.com/donorhub/donorhub/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades chat connections and dispatches inbound events to
// the chat gateway. Connections authenticate at upgrade time with a JWT
// passed as a `token` query parameter or a bearer header; the claims'
// user id is bound to the connection for its lifetime.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
	tokens  *jwt.Manager
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig, tokens *jwt.Manager) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
		tokens:  tokens,
	}
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader(middleware.AuthHeaderKey)
		if strings.HasPrefix(header, middleware.BearerPrefix) {
			token = strings.TrimPrefix(header, middleware.BearerPrefix)
		}
	}
	if token == "" {
		response.Unauthorized(c, "missing token")
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), claims.UserID, h.hub, conn, h.wsCfg)

	h.hub.Register(client)

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleMessage)
		h.service.HandleDisconnect(context.Background(), client)
	}()
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	var base domain.BaseEvent
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid event format"))
		return
	}

	ctx := context.Background()
	l := log.L()

	switch base.Type {
	case domain.EventJoinRoom:
		var event domain.JoinRoomEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid join_room event"))
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client, event.RoomID); err != nil {
			l.Warn().Err(err).Str(log.FieldConnID, client.ID).Msg("join room failed")
		}

	case domain.EventLeaveRoom:
		var event domain.LeaveRoomEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid leave_room event"))
			return
		}
		if err := h.service.HandleLeaveRoom(ctx, client, event.RoomID); err != nil {
			l.Warn().Err(err).Str(log.FieldConnID, client.ID).Msg("leave room failed")
		}

	case domain.EventSendMessage:
		var event domain.SendMessageEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid send_message event"))
			return
		}
		if err := h.service.HandleSendMessage(ctx, client, &event); err != nil {
			l.Warn().Err(err).Str(log.FieldConnID, client.ID).Msg("send message failed")
		}

	case domain.EventPing:
		client.SendMessage(map[string]string{"type": domain.EventPong})

	default:
		client.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "unknown event type"))
	}
}
