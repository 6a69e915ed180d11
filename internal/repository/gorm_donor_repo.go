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

// GormDonorRepository implements DonorRepository using GORM.
type GormDonorRepository struct {
	db *gorm.DB
}

// NewGormDonorRepository creates a new GORM-based donor repository.
func NewGormDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

// Create registers a user as a donor. A second registration for the same
// user surfaces as domain.ErrConflict.
func (r *GormDonorRepository) Create(ctx context.Context, d *domain.Donor) error {
	l := log.Ctx(ctx)

	d.ID = uuid.New().String()
	if d.Status == "" {
		d.Status = domain.DonorAvailable
	}

	model := domain.DonorToModel(d)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: user is already a donor", domain.ErrConflict)
		}
		l.Error().Err(err).Msg("failed to create donor in db")
		return err
	}

	d.CreatedAt = model.CreatedAt
	return nil
}

// GetByUserID retrieves a donor registration by user id.
func (r *GormDonorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	var model domain.DonorModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no donor for user %s", domain.ErrNotFound, userID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAvailable returns one available donor for the blood group,
// excluding the given user.
func (r *GormDonorRepository) FindAvailable(ctx context.Context, bloodGroup, excludeUserID string) (*domain.Donor, error) {
	var model domain.DonorModel
	err := r.db.WithContext(ctx).
		Where("blood_group = ? AND status = ? AND user_id <> ?",
			bloodGroup, string(domain.DonorAvailable), excludeUserID).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no available donor for blood group %s", domain.ErrNotFound, bloodGroup)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SearchAvailable lists available donors for the blood group, optionally
// restricted to the given user ids.
func (r *GormDonorRepository) SearchAvailable(ctx context.Context, bloodGroup string, userIDs []string, excludeUserID string) ([]domain.Donor, error) {
	query := r.db.WithContext(ctx).
		Where("blood_group = ? AND status = ?", bloodGroup, string(domain.DonorAvailable))

	if userIDs != nil {
		query = query.Where("user_id IN ?", userIDs)
	}
	if excludeUserID != "" {
		query = query.Where("user_id <> ?", excludeUserID)
	}

	var models []domain.DonorModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	donors := make([]domain.Donor, len(models))
	for i := range models {
		donors[i] = *models[i].ToDomain()
	}
	return donors, nil
}
