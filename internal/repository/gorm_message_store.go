package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/pkg/log"
)

// GormMessageStore implements MessageStore using GORM.
//
// Message ids are monotonic ULIDs generated under the store mutex, so id
// order equals append-completion order even when appends race within the
// same millisecond. The mutex also serializes the inserts themselves,
// which keeps created_at non-decreasing per store instance.
type GormMessageStore struct {
	db      *gorm.DB
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	clock   func() time.Time
}

// NewGormMessageStore creates a new GORM-based message store.
func NewGormMessageStore(db *gorm.DB) *GormMessageStore {
	return &GormMessageStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
		clock:   time.Now,
	}
}

// Append persists one chat message. The only mutation the store exposes.
func (s *GormMessageStore) Append(ctx context.Context, requestID, senderID, recipientID, body string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body must not be empty", domain.ErrValidation)
	}
	if requestID == "" || senderID == "" || recipientID == "" {
		return nil, fmt.Errorf("%w: request, sender and recipient ids are required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().UTC()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	model := &domain.ChatMessageModel{
		ID:          id.String(),
		RequestID:   requestID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   now,
	}

	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoomID, requestID).Msg("failed to append chat message")
		return nil, fmt.Errorf("failed to append chat message: %w", err)
	}

	return model.ToDomain(), nil
}

// ListByRequest returns the full conversation for a request, oldest
// first. The ULID id breaks created_at ties in insertion order.
func (s *GormMessageStore) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", domain.ErrValidation)
	}

	var models []domain.ChatMessageModel
	err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := make([]domain.ChatMessage, len(models))
	for i := range models {
		messages[i] = *models[i].ToDomain()
	}
	return messages, nil
}
