package service

import (
	"context"
	"errors"
	"testing"

	"github.com/donorhub/donorhub/internal/domain"
)

func TestDonorRegisterUsesOwnBloodGroup(t *testing.T) {
	users := &fakeUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, BloodGroup: "B-"}, nil
		},
	}
	var created *domain.Donor
	donors := &fakeDonorRepo{
		CreateFunc: func(ctx context.Context, d *domain.Donor) error {
			d.ID = "donor-row-1"
			created = d
			return nil
		},
	}
	svc := NewDonorService(donors, users)

	donor, err := svc.Register(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created == nil || created.BloodGroup != "B-" || created.Status != domain.DonorAvailable {
		t.Fatalf("created = %+v", created)
	}
	if donor.UserID != "user-1" {
		t.Fatalf("donor = %+v", donor)
	}
}

func TestDonorSearchFiltersByAddress(t *testing.T) {
	users := &fakeUserRepo{
		ListIDsByAddressFunc: func(ctx context.Context, address string) ([]string, error) {
			if address != "Springfield" {
				t.Fatalf("address = %q", address)
			}
			return []string{"user-2"}, nil
		},
		GetManyByIDFunc: func(ctx context.Context, ids []string) (map[string]*domain.User, error) {
			return map[string]*domain.User{
				"user-2": {ID: "user-2", FullName: "Dan Donor", Address: "1 Springfield Ave"},
			}, nil
		},
	}
	donors := &fakeDonorRepo{
		SearchAvailableFunc: func(ctx context.Context, bloodGroup string, userIDs []string, excludeUserID string) ([]domain.Donor, error) {
			if bloodGroup != "O+" {
				t.Fatalf("blood group = %q", bloodGroup)
			}
			if len(userIDs) != 1 || userIDs[0] != "user-2" {
				t.Fatalf("userIDs = %v", userIDs)
			}
			if excludeUserID != "user-1" {
				t.Fatalf("excludeUserID = %q", excludeUserID)
			}
			return []domain.Donor{{ID: "d-2", UserID: "user-2", BloodGroup: "O+"}}, nil
		},
	}
	svc := NewDonorService(donors, users)

	results, err := svc.Search(context.Background(), "user-1", &domain.DonorSearchRequest{
		BloodGroup: "o+",
		Address:    "Springfield",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].FullName != "Dan Donor" || results[0].Address != "1 Springfield Ave" {
		t.Fatalf("results = %+v", results)
	}
}

func TestDonorSearchNoAddressMatches(t *testing.T) {
	users := &fakeUserRepo{
		ListIDsByAddressFunc: func(ctx context.Context, address string) ([]string, error) {
			return nil, nil
		},
	}
	svc := NewDonorService(&fakeDonorRepo{}, users)

	results, err := svc.Search(context.Background(), "user-1", &domain.DonorSearchRequest{
		BloodGroup: "O+",
		Address:    "Nowhere",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v, want empty", results)
	}
}

func TestDonorSearchRejectsUnknownBloodGroup(t *testing.T) {
	svc := NewDonorService(&fakeDonorRepo{}, &fakeUserRepo{})

	_, err := svc.Search(context.Background(), "user-1", &domain.DonorSearchRequest{BloodGroup: "Z-"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
