package service

import (
	"context"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/hub"
)

// ChatService is the gateway between websocket connections and the chat
// core: it resolves the counterpart, persists the message, and fans the
// stored record out to the room.
type ChatService interface {
	HandleJoinRoom(ctx context.Context, client *hub.Client, roomID string) error
	HandleLeaveRoom(ctx context.Context, client *hub.Client, roomID string) error
	HandleSendMessage(ctx context.Context, client *hub.Client, event *domain.SendMessageEvent) error
	HandleDisconnect(ctx context.Context, client *hub.Client) error
}

// HistoryService serves persisted conversation state over REST.
type HistoryService interface {
	// Conversations lists the approved requests the user may chat on.
	Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
	// History returns the full message log for a request the user is a
	// party to, oldest first.
	History(ctx context.Context, requestID, userID string) ([]domain.ChatMessage, error)
}

// AuthService owns registration, login and one-time code delivery.
type AuthService interface {
	SendOTP(ctx context.Context, email string) error
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
}

// RequestService owns the recipient-facing blood request operations.
type RequestService interface {
	Create(ctx context.Context, userID string, payload *domain.CreateRequestPayload) (*domain.BloodRequest, error)
	MyRequests(ctx context.Context, userID string) ([]domain.BloodRequest, error)
}

// AdminService owns the admin approval workflow.
type AdminService interface {
	Pending(ctx context.Context) ([]domain.PendingRequestView, error)
	// Approve assigns an available donor to the pending request and
	// notifies the recipient. Returns domain.ErrNotFound when no donor
	// with the required blood group is available.
	Approve(ctx context.Context, requestID, adminID string) (*domain.BloodRequest, error)
	Reject(ctx context.Context, requestID, adminID string) error
}

// DonorService owns donor registration and search.
type DonorService interface {
	Register(ctx context.Context, userID string) (*domain.Donor, error)
	Search(ctx context.Context, userID string, req *domain.DonorSearchRequest) ([]domain.Donor, error)
}
