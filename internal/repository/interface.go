package repository

import (
	"context"

	"github.com/donorhub/donorhub/internal/domain"
)

// MessageStore is the durable append-only log of chat messages, keyed by
// blood request id. Append is the only mutation; messages are never
// updated or deleted.
type MessageStore interface {
	// Append persists one message and returns the stored record with its
	// assigned id and timestamp. Returns domain.ErrValidation when the
	// body is empty or any id is malformed.
	Append(ctx context.Context, requestID, senderID, recipientID, body string) (*domain.ChatMessage, error)

	// ListByRequest returns all messages for the request ordered by
	// creation time ascending, ties broken by insertion order. Reflects
	// all previously completed appends on this store instance.
	ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error)
}

// RequestRepository owns blood request persistence and the link record
// the chat resolver consumes.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	ListByRecipient(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	ListPending(ctx context.Context) ([]domain.BloodRequest, error)
	// ListApprovedInvolving returns approved requests where the user is
	// either the recipient or the assigned donor.
	ListApprovedInvolving(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	// Approve transitions a pending request to approved with the donor
	// assignment; returns domain.ErrNotFound when the request does not
	// exist or was already processed.
	Approve(ctx context.Context, id, adminID, donorUserID string) error
	// Reject transitions a pending request to rejected; same not-found
	// semantics as Approve.
	Reject(ctx context.Context, id, adminID string) error
}

// UserRepository is the directory of registered accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetManyByID returns the users found, keyed by id; missing ids are
	// simply absent.
	GetManyByID(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// ListIDsByAddress returns ids of users whose address contains the
	// given substring, case-insensitive.
	ListIDsByAddress(ctx context.Context, address string) ([]string, error)
}

// DonorRepository owns donor registrations.
type DonorRepository interface {
	Create(ctx context.Context, d *domain.Donor) error
	GetByUserID(ctx context.Context, userID string) (*domain.Donor, error)
	// FindAvailable returns one available donor for the blood group,
	// excluding the given user (a recipient cannot be assigned to their
	// own request).
	FindAvailable(ctx context.Context, bloodGroup, excludeUserID string) (*domain.Donor, error)
	// SearchAvailable lists available donors for the blood group. When
	// userIDs is non-nil only those users are considered; excludeUserID
	// is always omitted.
	SearchAvailable(ctx context.Context, bloodGroup string, userIDs []string, excludeUserID string) ([]domain.Donor, error)
}

// OTPRepository owns one-time registration codes.
type OTPRepository interface {
	Create(ctx context.Context, o *domain.OTP) error
	// GetActiveByEmail returns the newest unconsumed, unexpired code for
	// the email, or domain.ErrNotFound.
	GetActiveByEmail(ctx context.Context, email string) (*domain.OTP, error)
	Consume(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
