package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donorhub/donorhub/internal/cache"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/repository"
	"github.com/donorhub/donorhub/pkg/log"
)

type historyService struct {
	store    repository.MessageStore
	requests repository.RequestRepository
	users    repository.UserRepository
	cache    cache.HistoryCache
	ttl      time.Duration
	sf       singleflight.Group
}

func NewHistoryService(
	store repository.MessageStore,
	requests repository.RequestRepository,
	users repository.UserRepository,
	historyCache cache.HistoryCache,
	ttl time.Duration,
) HistoryService {
	return &historyService{
		store:    store,
		requests: requests,
		users:    users,
		cache:    historyCache,
		ttl:      ttl,
	}
}

// Conversations lists the approved requests the user is a party to, with
// both party names resolved for display.
func (s *historyService) Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	requests, err := s.requests.ListApprovedInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	ids := make([]string, 0, len(requests)*2)
	for i := range requests {
		ids = append(ids, requests[i].RecipientUserID, requests[i].AssignedDonorID)
	}

	users, err := s.users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation parties: %w", err)
	}

	summaries := make([]domain.ConversationSummary, 0, len(requests))
	for i := range requests {
		summary := domain.ConversationSummary{
			ID:                 requests[i].ID,
			RequiredBloodGroup: requests[i].RequiredBloodGroup,
		}
		if u, ok := users[requests[i].RecipientUserID]; ok {
			summary.RecipientName = u.FullName
		}
		if u, ok := users[requests[i].AssignedDonorID]; ok {
			summary.DonorName = u.FullName
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// History returns the full conversation for the request, oldest first.
// Only the two chat parties may read it. Reads go through the cache;
// concurrent misses for the same request collapse into one store query.
func (s *historyService) History(ctx context.Context, requestID, userID string) ([]domain.ChatMessage, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if userID != req.RecipientUserID && userID != req.AssignedDonorID {
		return nil, fmt.Errorf("%w: not a party to this request", domain.ErrNotAuthorized)
	}

	key := s.cache.BuildKey(requestID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		return cached.Messages, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldRoomID, requestID).Msg("history cache read failed, falling through to store")
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Collapsed callers share this one execution, so it must not die
		// with whichever caller happened to start it.
		dctx := context.WithoutCancel(ctx)

		messages, err := s.store.ListByRequest(dctx, requestID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(dctx, key, &cache.HistoryResult{Messages: messages}, s.ttl); err != nil {
			l := log.Ctx(dctx)
			l.Warn().Err(err).Str(log.FieldRoomID, requestID).Msg("failed to populate history cache")
		}
		return messages, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.ChatMessage), nil
}
