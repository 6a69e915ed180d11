package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/donorhub/donorhub/internal/domain"
)

func approvedRequest() *domain.BloodRequest {
	return &domain.BloodRequest{
		ID:              "req-1",
		RecipientUserID: "recipient-1",
		AssignedDonorID: "donor-1",
		Status:          domain.RequestApproved,
	}
}

func resolverWith(req *domain.BloodRequest, err error) *CounterpartResolver {
	return NewCounterpartResolver(&fakeRequestRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.BloodRequest, error) {
			if err != nil {
				return nil, err
			}
			return req, nil
		},
	})
}

func TestResolveRecipientGetsDonor(t *testing.T) {
	r := resolverWith(approvedRequest(), nil)

	counterpart, err := r.Resolve(context.Background(), "req-1", "recipient-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if counterpart != "donor-1" {
		t.Fatalf("counterpart = %q, want donor-1", counterpart)
	}
}

func TestResolveDonorGetsRecipient(t *testing.T) {
	r := resolverWith(approvedRequest(), nil)

	counterpart, err := r.Resolve(context.Background(), "req-1", "donor-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if counterpart != "recipient-1" {
		t.Fatalf("counterpart = %q, want recipient-1", counterpart)
	}
}

func TestResolveUnknownRequest(t *testing.T) {
	r := resolverWith(nil, fmt.Errorf("%w: blood request req-x", domain.ErrNotFound))

	_, err := r.Resolve(context.Background(), "req-x", "recipient-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveThirdPartyRejected(t *testing.T) {
	r := resolverWith(approvedRequest(), nil)

	_, err := r.Resolve(context.Background(), "req-1", "stranger")
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestResolvePendingRequestRejected(t *testing.T) {
	req := approvedRequest()
	req.Status = domain.RequestPending
	r := resolverWith(req, nil)

	_, err := r.Resolve(context.Background(), "req-1", "recipient-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestResolveNoDonorAssigned(t *testing.T) {
	req := approvedRequest()
	req.AssignedDonorID = ""
	r := resolverWith(req, nil)

	_, err := r.Resolve(context.Background(), "req-1", "recipient-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}
