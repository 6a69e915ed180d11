package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/donorhub/donorhub/internal/audit"
	"github.com/donorhub/donorhub/internal/cache"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/hub"
	"github.com/donorhub/donorhub/internal/repository"
	"github.com/donorhub/donorhub/pkg/log"
)

// counterpartResolver is the slice of CounterpartResolver the gateway
// needs.
type counterpartResolver interface {
	Resolve(ctx context.Context, requestID, senderID string) (string, error)
}

type chatService struct {
	hub         *hub.Hub
	store       repository.MessageStore
	resolver    counterpartResolver
	cache       cache.HistoryCache
	sendTimeout time.Duration
}

func NewChatService(
	h *hub.Hub,
	store repository.MessageStore,
	resolver counterpartResolver,
	historyCache cache.HistoryCache,
	sendTimeout time.Duration,
) ChatService {
	return &chatService{
		hub:         h,
		store:       store,
		resolver:    resolver,
		cache:       historyCache,
		sendTimeout: sendTimeout,
	}
}

// HandleJoinRoom subscribes the connection to the request's room and
// confirms with a room_joined event. Joining an already-joined room is a
// no-op that still confirms.
func (s *chatService) HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "room_id is required"))
	}

	s.hub.JoinRoom(c, roomID)
	audit.LogWithDetail(ctx, audit.ActionJoinRoom, c.UserID, roomID, "connection joined room")

	return c.SendMessage(&domain.RoomEvent{
		Type:   domain.EventRoomJoined,
		RoomID: roomID,
	})
}

// HandleLeaveRoom unsubscribes the connection from the room. Leaving a
// room the connection is not in still confirms with room_left.
func (s *chatService) HandleLeaveRoom(ctx context.Context, c *hub.Client, roomID string) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "room_id is required"))
	}

	s.hub.LeaveRoom(c, roomID)
	audit.LogWithDetail(ctx, audit.ActionLeaveRoom, c.UserID, roomID, "connection left room")

	return c.SendMessage(&domain.RoomEvent{
		Type:   domain.EventRoomLeft,
		RoomID: roomID,
	})
}

// HandleSendMessage runs the gateway send path: resolve the counterpart,
// append to the store, then broadcast the stored record to the room. Any
// failure is reported privately to the sender; nothing is broadcast and
// nothing is persisted unless the resolve step passed.
func (s *chatService) HandleSendMessage(ctx context.Context, c *hub.Client, event *domain.SendMessageEvent) error {
	if event.RoomID == "" || event.SenderID == "" || strings.TrimSpace(event.Message) == "" {
		return c.SendMessage(domain.NewErrorEvent(domain.ErrCodeBadRequest, "room_id, sender_id and message are required"))
	}

	// The sender is whoever authenticated the connection, not whatever
	// the payload claims.
	if event.SenderID != c.UserID {
		return c.SendMessage(domain.NewErrorEvent(domain.ErrCodeNotAuthorized, "sender_id does not match the authenticated user"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	recipientID, err := s.resolver.Resolve(ctx, event.RoomID, event.SenderID)
	if err != nil {
		return s.replyError(ctx, c, event, err)
	}

	msg, err := s.store.Append(ctx, event.RoomID, event.SenderID, recipientID, event.Message)
	if err != nil {
		return s.replyError(ctx, c, event, err)
	}

	// The cached history is now stale. Drop it so the next read hits the
	// store and sees this message.
	if err := s.cache.Invalidate(ctx, s.cache.BuildKey(event.RoomID)); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldRoomID, event.RoomID).Msg("failed to invalidate history cache")
	}

	audit.LogWithDetail(ctx, audit.ActionSendMessage, event.SenderID, event.RoomID, "chat message sent")

	return s.hub.BroadcastToRoom(event.RoomID, &domain.ReceiveMessageEvent{
		Type:        domain.EventReceiveMessage,
		MessageID:   msg.ID,
		RoomID:      msg.RequestID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Message:     msg.Body,
		Timestamp:   msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// HandleDisconnect removes the connection from every room it joined.
func (s *chatService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	s.hub.LeaveAll(c)
	audit.LogWithDetail(ctx, audit.ActionDisconnect, c.UserID, c.ID, "connection disconnected")
	return nil
}

// replyError maps a domain error to a private error event on the
// sender's connection. Other room members never see it.
func (s *chatService) replyError(ctx context.Context, c *hub.Client, event *domain.SendMessageEvent, err error) error {
	l := log.Ctx(ctx)
	l.Warn().Err(err).
		Str(log.FieldRoomID, event.RoomID).
		Str(log.FieldUserID, event.SenderID).
		Msg("chat send rejected")

	code := domain.ErrCodeInternalError
	msg := "failed to send message"

	switch {
	case errors.Is(err, domain.ErrValidation):
		code = domain.ErrCodeBadRequest
		msg = "invalid message"
	case errors.Is(err, domain.ErrNotFound):
		code = domain.ErrCodeNotFound
		msg = "unknown chat room"
	case errors.Is(err, domain.ErrNotAuthorized):
		code = domain.ErrCodeNotAuthorized
		msg = "not a party to this chat"
	case errors.Is(err, domain.ErrInvalidState):
		code = domain.ErrCodeInvalidState
		msg = "chat is not open for this request"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrTimeout):
		code = domain.ErrCodeTimeout
		msg = "timed out sending message"
	}

	return c.SendMessage(domain.NewErrorEvent(code, msg))
}
