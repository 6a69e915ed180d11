package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/pkg/log"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GORM-based request repository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Create stores a new pending blood request.
func (r *GormRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	l := log.Ctx(ctx)

	req.ID = uuid.New().String()
	req.Status = domain.RequestPending

	model := domain.BloodRequestToModel(req)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create blood request in db")
		return err
	}

	req.CreatedAt = model.CreatedAt
	l.Debug().Str("blood_request_id", req.ID).Msg("blood request created in db")
	return nil
}

// GetByID retrieves a blood request by id.
func (r *GormRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	var model domain.BloodRequestModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: blood request %s", domain.ErrNotFound, id)
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str("blood_request_id", id).Msg("failed to get blood request by id")
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByRecipient returns the recipient's requests, newest first.
func (r *GormRequestRepository) ListByRecipient(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	var models []domain.BloodRequestModel
	err := r.db.WithContext(ctx).
		Where("recipient_user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(models), nil
}

// ListPending returns all pending requests, oldest first.
func (r *GormRequestRepository) ListPending(ctx context.Context) ([]domain.BloodRequest, error) {
	var models []domain.BloodRequestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.RequestPending)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(models), nil
}

// ListApprovedInvolving returns approved requests where the user is the
// recipient or the assigned donor.
func (r *GormRequestRepository) ListApprovedInvolving(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	var models []domain.BloodRequestModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.RequestApproved)).
		Where("recipient_user_id = ? OR assigned_donor_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(models), nil
}

// Approve assigns a donor to a pending request and marks it approved.
// The status guard makes concurrent approvals of the same request settle
// on a single winner.
func (r *GormRequestRepository) Approve(ctx context.Context, id, adminID, donorUserID string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.BloodRequestModel{}).
		Where("id = ? AND status = ?", id, string(domain.RequestPending)).
		Updates(map[string]interface{}{
			"status":               string(domain.RequestApproved),
			"approved_by_admin_id": adminID,
			"assigned_donor_id":    donorUserID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: blood request %s not pending", domain.ErrNotFound, id)
	}
	return nil
}

// Reject marks a pending request rejected.
func (r *GormRequestRepository) Reject(ctx context.Context, id, adminID string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.BloodRequestModel{}).
		Where("id = ? AND status = ?", id, string(domain.RequestPending)).
		Updates(map[string]interface{}{
			"status":               string(domain.RequestRejected),
			"approved_by_admin_id": adminID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: blood request %s not pending", domain.ErrNotFound, id)
	}
	return nil
}

func toDomainRequests(models []domain.BloodRequestModel) []domain.BloodRequest {
	requests := make([]domain.BloodRequest, len(models))
	for i := range models {
		requests[i] = *models[i].ToDomain()
	}
	return requests
}
