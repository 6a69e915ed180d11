package service

import (
	"context"
	"fmt"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/repository"
)

// CounterpartResolver maps (request id, sender id) to the id of the other
// chat party. It is the sole authority on who may talk on which room: a
// chat is valid only while the request is approved with a donor assigned,
// and only between the recipient and that donor.
type CounterpartResolver struct {
	requests repository.RequestRepository
}

func NewCounterpartResolver(requests repository.RequestRepository) *CounterpartResolver {
	return &CounterpartResolver{requests: requests}
}

// Resolve returns the counterpart user id for a message sent by senderID
// on the request's room.
//
// Errors: domain.ErrNotFound when the request does not exist,
// domain.ErrNotAuthorized when the sender is neither party, and
// domain.ErrInvalidState when the request is not approved or has no
// donor assigned.
func (r *CounterpartResolver) Resolve(ctx context.Context, requestID, senderID string) (string, error) {
	req, err := r.requests.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	if senderID != req.RecipientUserID && senderID != req.AssignedDonorID {
		return "", fmt.Errorf("%w: sender is not a party to this request", domain.ErrNotAuthorized)
	}

	if req.Status != domain.RequestApproved || req.AssignedDonorID == "" {
		return "", fmt.Errorf("%w: request is not approved for chat", domain.ErrInvalidState)
	}

	if senderID == req.RecipientUserID {
		return req.AssignedDonorID, nil
	}
	return req.RecipientUserID, nil
}
