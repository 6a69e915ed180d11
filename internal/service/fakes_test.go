package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/donorhub/donorhub/internal/cache"
	"github.com/donorhub/donorhub/internal/domain"
)

type fakeRequestRepo struct {
	CreateFunc                func(ctx context.Context, r *domain.BloodRequest) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.BloodRequest, error)
	ListByRecipientFunc       func(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	ListPendingFunc           func(ctx context.Context) ([]domain.BloodRequest, error)
	ListApprovedInvolvingFunc func(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	ApproveFunc               func(ctx context.Context, id, adminID, donorUserID string) error
	RejectFunc                func(ctx context.Context, id, adminID string) error
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *domain.BloodRequest) error {
	return f.CreateFunc(ctx, r)
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeRequestRepo) ListByRecipient(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	return f.ListByRecipientFunc(ctx, userID)
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]domain.BloodRequest, error) {
	return f.ListPendingFunc(ctx)
}

func (f *fakeRequestRepo) ListApprovedInvolving(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	return f.ListApprovedInvolvingFunc(ctx, userID)
}

func (f *fakeRequestRepo) Approve(ctx context.Context, id, adminID, donorUserID string) error {
	return f.ApproveFunc(ctx, id, adminID, donorUserID)
}

func (f *fakeRequestRepo) Reject(ctx context.Context, id, adminID string) error {
	return f.RejectFunc(ctx, id, adminID)
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	appendFn func(ctx context.Context, requestID, senderID, recipientID, body string) (*domain.ChatMessage, error)
	listFn   func(ctx context.Context, requestID string) ([]domain.ChatMessage, error)
}

func (f *fakeMessageStore) Append(ctx context.Context, requestID, senderID, recipientID, body string) (*domain.ChatMessage, error) {
	if f.appendFn != nil {
		return f.appendFn(ctx, requestID, senderID, recipientID, body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := domain.ChatMessage{
		ID:          fmt.Sprintf("msg-%d", len(f.messages)+1),
		RequestID:   requestID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Add(time.Duration(len(f.messages)) * time.Second),
	}
	f.messages = append(f.messages, msg)
	return &msg, nil
}

func (f *fakeMessageStore) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	if f.listFn != nil {
		return f.listFn(ctx, requestID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range f.messages {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeUserRepo struct {
	CreateFunc           func(ctx context.Context, u *domain.User) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	GetManyByIDFunc      func(ctx context.Context, ids []string) (map[string]*domain.User, error)
	ListIDsByAddressFunc func(ctx context.Context, address string) ([]string, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	return f.CreateFunc(ctx, u)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.GetByEmailFunc(ctx, email)
}

func (f *fakeUserRepo) GetManyByID(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	return f.GetManyByIDFunc(ctx, ids)
}

func (f *fakeUserRepo) ListIDsByAddress(ctx context.Context, address string) ([]string, error) {
	return f.ListIDsByAddressFunc(ctx, address)
}

type fakeOTPRepo struct {
	CreateFunc           func(ctx context.Context, o *domain.OTP) error
	GetActiveByEmailFunc func(ctx context.Context, email string) (*domain.OTP, error)
	ConsumeFunc          func(ctx context.Context, id string) error
	DeleteFunc           func(ctx context.Context, id string) error
}

func (f *fakeOTPRepo) Create(ctx context.Context, o *domain.OTP) error {
	return f.CreateFunc(ctx, o)
}

func (f *fakeOTPRepo) GetActiveByEmail(ctx context.Context, email string) (*domain.OTP, error) {
	return f.GetActiveByEmailFunc(ctx, email)
}

func (f *fakeOTPRepo) Consume(ctx context.Context, id string) error {
	return f.ConsumeFunc(ctx, id)
}

func (f *fakeOTPRepo) Delete(ctx context.Context, id string) error {
	return f.DeleteFunc(ctx, id)
}

type fakeDonorRepo struct {
	CreateFunc          func(ctx context.Context, d *domain.Donor) error
	GetByUserIDFunc     func(ctx context.Context, userID string) (*domain.Donor, error)
	FindAvailableFunc   func(ctx context.Context, bloodGroup, excludeUserID string) (*domain.Donor, error)
	SearchAvailableFunc func(ctx context.Context, bloodGroup string, userIDs []string, excludeUserID string) ([]domain.Donor, error)
}

func (f *fakeDonorRepo) Create(ctx context.Context, d *domain.Donor) error {
	return f.CreateFunc(ctx, d)
}

func (f *fakeDonorRepo) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	return f.GetByUserIDFunc(ctx, userID)
}

func (f *fakeDonorRepo) FindAvailable(ctx context.Context, bloodGroup, excludeUserID string) (*domain.Donor, error) {
	return f.FindAvailableFunc(ctx, bloodGroup, excludeUserID)
}

func (f *fakeDonorRepo) SearchAvailable(ctx context.Context, bloodGroup string, userIDs []string, excludeUserID string) ([]domain.Donor, error) {
	return f.SearchAvailableFunc(ctx, bloodGroup, userIDs, excludeUserID)
}

// fakeHistoryCache is an in-memory HistoryCache.
type fakeHistoryCache struct {
	mu          sync.Mutex
	entries     map[string]*cache.HistoryResult
	gets        int
	sets        int
	invalidates []string
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{entries: make(map[string]*cache.HistoryResult)}
}

func (f *fakeHistoryCache) BuildKey(requestID string) string {
	return "chat:history:" + requestID
}

func (f *fakeHistoryCache) Get(ctx context.Context, key string) (*cache.HistoryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if result, ok := f.entries[key]; ok {
		return result, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeHistoryCache) Set(ctx context.Context, key string, result *cache.HistoryResult, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries[key] = result
	return nil
}

func (f *fakeHistoryCache) Invalidate(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidates = append(f.invalidates, key)
	delete(f.entries, key)
	return nil
}

func (f *fakeHistoryCache) Close() error { return nil }

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
