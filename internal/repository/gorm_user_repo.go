package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/pkg/log"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create stores a new user account. A duplicate email surfaces as
// domain.ErrConflict.
func (r *GormUserRepository) Create(ctx context.Context, u *domain.User) error {
	l := log.Ctx(ctx)

	u.ID = uuid.New().String()
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	model := domain.UserToModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		l.Error().Err(err).Msg("failed to create user in db")
		return err
	}

	u.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldUserID, u.ID).Msg("user created in db")
	return nil
}

// GetByID retrieves a user by id.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no user with that email", domain.ErrNotFound)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetManyByID returns the users found, keyed by id.
func (r *GormUserRepository) GetManyByID(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if len(ids) == 0 {
		return map[string]*domain.User{}, nil
	}

	var models []domain.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	users := make(map[string]*domain.User, len(models))
	for i := range models {
		users[models[i].ID] = models[i].ToDomain()
	}
	return users, nil
}

// ListIDsByAddress returns ids of users whose address contains the given
// substring, case-insensitive.
func (r *GormUserRepository) ListIDsByAddress(ctx context.Context, address string) ([]string, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(address)) + "%"

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.UserModel{}).
		Where("LOWER(address) LIKE ?", pattern).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// isDuplicateKeyError matches uniqueness violations across the supported
// drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
