package cache

import (
	"context"
	"time"

	"github.com/donorhub/donorhub/internal/domain"
)

// HistoryResult is the cached form of one conversation's full history.
type HistoryResult struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// HistoryCache is a read-through cache for conversation history, keyed
// by blood request id. Entries are invalidated on every new append so
// reads after a completed send always see the new message.
type HistoryCache interface {
	Get(ctx context.Context, key string) (*HistoryResult, error)
	Set(ctx context.Context, key string, result *HistoryResult, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	BuildKey(requestID string) string
	Close() error
}
