package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/donorhub/donorhub/internal/audit"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/repository"
)

type requestService struct {
	requests repository.RequestRepository
}

func NewRequestService(requests repository.RequestRepository) RequestService {
	return &requestService{requests: requests}
}

// Create records a new blood request for the recipient. It starts
// pending and stays invisible to chat until an admin approves it.
func (s *requestService) Create(ctx context.Context, userID string, payload *domain.CreateRequestPayload) (*domain.BloodRequest, error) {
	bloodGroup := strings.ToUpper(strings.TrimSpace(payload.RequiredBloodGroup))
	if !domain.ValidBloodGroup(bloodGroup) {
		return nil, fmt.Errorf("%w: unknown blood group %q", domain.ErrValidation, payload.RequiredBloodGroup)
	}
	hospital := strings.TrimSpace(payload.HospitalName)
	if hospital == "" {
		return nil, fmt.Errorf("%w: hospital name is required", domain.ErrValidation)
	}

	req := &domain.BloodRequest{
		RecipientUserID:    userID,
		RequiredBloodGroup: bloodGroup,
		HospitalName:       hospital,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionRequestCreate, userID, req.ID, "blood request created")
	return req, nil
}

// MyRequests lists the caller's requests, newest first.
func (s *requestService) MyRequests(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	return s.requests.ListByRecipient(ctx, userID)
}
