package hub

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/donorhub/donorhub/internal/config"
)

func testConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(testConfig())
	go h.Run()
	return h
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message on %s", c.ID)
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("unexpected message on %s: %s", c.ID, data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	h := newTestHub(t)
	c := NewClient("conn-1", "user-1", h, nil, testConfig())
	h.Register(c)

	h.JoinRoom(c, "room-1")
	h.JoinRoom(c, "room-1")

	members := h.MembersOf("room-1")
	if len(members) != 1 || members[0] != "conn-1" {
		t.Fatalf("MembersOf = %v, want [conn-1]", members)
	}
}

func TestLeaveRoomDropsEmptyRoom(t *testing.T) {
	h := newTestHub(t)
	c := NewClient("conn-1", "user-1", h, nil, testConfig())
	h.Register(c)

	h.JoinRoom(c, "room-1")
	h.LeaveRoom(c, "room-1")

	if members := h.MembersOf("room-1"); members != nil {
		t.Fatalf("MembersOf after leave = %v, want nil", members)
	}

	// Leaving a room the connection is not in is a no-op.
	h.LeaveRoom(c, "room-1")
}

func TestLeaveAllRemovesEveryMembership(t *testing.T) {
	h := newTestHub(t)
	c := NewClient("conn-1", "user-1", h, nil, testConfig())
	other := NewClient("conn-2", "user-1", h, nil, testConfig())
	h.Register(c)
	h.Register(other)

	h.JoinRoom(c, "room-1")
	h.JoinRoom(c, "room-2")
	h.JoinRoom(other, "room-1")

	h.LeaveAll(c)

	if members := h.MembersOf("room-2"); members != nil {
		t.Fatalf("room-2 members = %v, want nil", members)
	}
	members := h.MembersOf("room-1")
	if len(members) != 1 || members[0] != "conn-2" {
		t.Fatalf("room-1 members = %v, want [conn-2]", members)
	}
}

func TestBroadcastReachesAllMembersIncludingSender(t *testing.T) {
	h := newTestHub(t)
	sender := NewClient("conn-sender", "user-1", h, nil, testConfig())
	peer := NewClient("conn-peer", "user-1", h, nil, testConfig())
	outsider := NewClient("conn-outsider", "user-1", h, nil, testConfig())
	h.Register(sender)
	h.Register(peer)
	h.Register(outsider)

	h.JoinRoom(sender, "room-1")
	h.JoinRoom(peer, "room-1")
	h.JoinRoom(outsider, "room-2")

	payload := map[string]string{"type": "receive_message", "message": "hello"}
	if err := h.BroadcastToRoom("room-1", payload); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	for _, c := range []*Client{sender, peer} {
		var got map[string]string
		if err := json.Unmarshal(recv(t, c), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["message"] != "hello" {
			t.Fatalf("%s got %v", c.ID, got)
		}
	}
	assertSilent(t, outsider)
}

func TestBroadcastOrderPreserved(t *testing.T) {
	h := newTestHub(t)
	c := NewClient("conn-1", "user-1", h, nil, testConfig())
	h.Register(c)
	h.JoinRoom(c, "room-1")

	want := []string{"one", "two", "three"}
	for _, m := range want {
		if err := h.BroadcastToRoom("room-1", map[string]string{"message": m}); err != nil {
			t.Fatalf("BroadcastToRoom: %v", err)
		}
	}

	for i, exp := range want {
		var got map[string]string
		if err := json.Unmarshal(recv(t, c), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["message"] != exp {
			t.Fatalf("message %d = %q, want %q", i, got["message"], exp)
		}
	}
}

func TestMembersOf(t *testing.T) {
	h := newTestHub(t)
	a := NewClient("conn-a", "user-1", h, nil, testConfig())
	b := NewClient("conn-b", "user-1", h, nil, testConfig())
	h.Register(a)
	h.Register(b)

	h.JoinRoom(a, "room-1")
	h.JoinRoom(b, "room-1")

	members := h.MembersOf("room-1")
	sort.Strings(members)
	if len(members) != 2 || members[0] != "conn-a" || members[1] != "conn-b" {
		t.Fatalf("MembersOf = %v, want [conn-a conn-b]", members)
	}
}
