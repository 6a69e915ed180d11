package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/donorhub/donorhub/internal/audit"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/repository"
)

type donorService struct {
	donors repository.DonorRepository
	users  repository.UserRepository
}

func NewDonorService(donors repository.DonorRepository, users repository.UserRepository) DonorService {
	return &donorService{donors: donors, users: users}
}

// Register enrolls the caller as an available donor under their own
// blood group. Registering twice is a conflict.
func (s *donorService) Register(ctx context.Context, userID string) (*domain.Donor, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	donor := &domain.Donor{
		UserID:     user.ID,
		BloodGroup: user.BloodGroup,
		Status:     domain.DonorAvailable,
	}
	if err := s.donors.Create(ctx, donor); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionDonorRegister, userID, "donor registered")
	return donor, nil
}

// Search lists available donors matching the blood group, optionally
// filtered by address substring. The caller is excluded from their own
// results, and each hit carries the donor's name and address.
func (s *donorService) Search(ctx context.Context, userID string, req *domain.DonorSearchRequest) ([]domain.Donor, error) {
	bloodGroup := strings.ToUpper(strings.TrimSpace(req.BloodGroup))
	if !domain.ValidBloodGroup(bloodGroup) {
		return nil, fmt.Errorf("%w: unknown blood group %q", domain.ErrValidation, req.BloodGroup)
	}

	var userIDs []string
	if strings.TrimSpace(req.Address) != "" {
		ids, err := s.users.ListIDsByAddress(ctx, req.Address)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []domain.Donor{}, nil
		}
		userIDs = ids
	}

	donors, err := s.donors.SearchAvailable(ctx, bloodGroup, userIDs, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(donors))
	for i := range donors {
		ids = append(ids, donors[i].UserID)
	}
	users, err := s.users.GetManyByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range donors {
		if u, ok := users[donors[i].UserID]; ok {
			donors[i].FullName = u.FullName
			donors[i].Address = u.Address
		}
	}
	return donors, nil
}
