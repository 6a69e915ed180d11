package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/donorhub/donorhub/internal/audit"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/mailer"
	"github.com/donorhub/donorhub/internal/repository"
	"github.com/donorhub/donorhub/pkg/log"
)

type adminService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	donors   repository.DonorRepository
	mail     mailer.Mailer
}

func NewAdminService(
	requests repository.RequestRepository,
	users repository.UserRepository,
	donors repository.DonorRepository,
	mail mailer.Mailer,
) AdminService {
	return &adminService{
		requests: requests,
		users:    users,
		donors:   donors,
		mail:     mail,
	}
}

// Pending lists pending requests joined with recipient contact details,
// oldest first.
func (s *adminService) Pending(ctx context.Context) ([]domain.PendingRequestView, error) {
	requests, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	ids := make([]string, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].RecipientUserID)
	}
	users, err := s.users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	views := make([]domain.PendingRequestView, 0, len(requests))
	for i := range requests {
		view := domain.PendingRequestView{
			ID:                 requests[i].ID,
			RequiredBloodGroup: requests[i].RequiredBloodGroup,
			HospitalName:       requests[i].HospitalName,
			Status:             string(requests[i].Status),
			CreatedAt:          requests[i].CreatedAt,
		}
		if u, ok := users[requests[i].RecipientUserID]; ok {
			view.RecipientName = u.FullName
			view.RecipientEmail = u.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// Approve picks an available donor for the request's blood group,
// assigns them, marks the request approved and notifies the recipient by
// mail. The recipient can never be assigned to their own request.
func (s *adminService) Approve(ctx context.Context, requestID, adminID string) (*domain.BloodRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestPending {
		// An already-processed request is no longer visible to the
		// admin queue, so it reads as missing.
		return nil, fmt.Errorf("%w: no pending request %s", domain.ErrNotFound, requestID)
	}

	donor, err := s.donors.FindAvailable(ctx, req.RequiredBloodGroup, req.RecipientUserID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Approve(ctx, requestID, adminID, donor.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost the race with another admin.
			return nil, fmt.Errorf("%w: no pending request %s", domain.ErrNotFound, requestID)
		}
		return nil, err
	}

	req.Status = domain.RequestApproved
	req.ApprovedByAdminID = adminID
	req.AssignedDonorID = donor.UserID

	audit.LogWithDetail(ctx, audit.ActionRequestApprove, adminID, requestID, "blood request approved")
	s.notifyRecipient(ctx, req)

	return req, nil
}

// Reject marks a pending request rejected. A request that is missing
// or already processed reports not found either way.
func (s *adminService) Reject(ctx context.Context, requestID, adminID string) error {
	if err := s.requests.Reject(ctx, requestID, adminID); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionRequestReject, adminID, requestID, "blood request rejected")
	return nil
}

// notifyRecipient is best-effort: a mail failure never rolls back an
// approval.
func (s *adminService) notifyRecipient(ctx context.Context, req *domain.BloodRequest) {
	recipient, err := s.users.GetByID(ctx, req.RecipientUserID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to load recipient for approval notice")
		return
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour blood request (%s, %s) has been approved and a donor has been assigned. Open the app to chat with your donor.\n",
		recipient.FullName, req.RequiredBloodGroup, req.HospitalName)
	if err := s.mail.Send(ctx, recipient.Email, "Your blood request was approved", body); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to send approval notice")
	}
}
