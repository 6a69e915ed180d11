package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/donorhub/donorhub/internal/domain"
)

// GormOTPRepository implements OTPRepository using GORM.
type GormOTPRepository struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewGormOTPRepository creates a new GORM-based OTP repository.
func NewGormOTPRepository(db *gorm.DB) *GormOTPRepository {
	return &GormOTPRepository{db: db, clock: time.Now}
}

// Create stores a new one-time code.
func (r *GormOTPRepository) Create(ctx context.Context, o *domain.OTP) error {
	o.ID = uuid.New().String()
	model := domain.OTPToModel(o)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	o.CreatedAt = model.CreatedAt
	return nil
}

// GetActiveByEmail returns the newest unconsumed, unexpired code for the
// email.
func (r *GormOTPRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.OTP, error) {
	var model domain.OTPModel
	err := r.db.WithContext(ctx).
		Where("email = ? AND consumed = ? AND expires_at > ?", email, false, r.clock()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active code for %s", domain.ErrNotFound, email)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Consume marks a code as used.
func (r *GormOTPRepository) Consume(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.OTPModel{}).
		Where("id = ?", id).
		Update("consumed", true).Error
}

// Delete removes a code, used when delivery fails.
func (r *GormOTPRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.OTPModel{}, "id = ?", id).Error
}
