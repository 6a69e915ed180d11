package domain

import "time"

// DonorStatus represents donor availability.
type DonorStatus string

const (
	DonorAvailable   DonorStatus = "available"
	DonorUnavailable DonorStatus = "unavailable"
)

// Donor represents a user registered as a blood donor.
type Donor struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	BloodGroup       string      `json:"blood_group"`
	Status           DonorStatus `json:"status"`
	LastDonationDate *time.Time  `json:"last_donation_date,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`

	// Populated from the user record for search results.
	FullName string `json:"full_name,omitempty"`
	Address  string `json:"address,omitempty"`
}

// DonorModel is the GORM model for the donors table.
type DonorModel struct {
	ID               string     `gorm:"type:varchar(36);primaryKey"`
	UserID           string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	BloodGroup       string     `gorm:"type:varchar(5);not null;index"`
	Status           string     `gorm:"type:varchar(15);not null;default:available"`
	LastDonationDate *time.Time `gorm:""`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for DonorModel.
func (DonorModel) TableName() string {
	return "donors"
}

// ToDomain converts DonorModel to domain Donor.
func (m *DonorModel) ToDomain() *Donor {
	return &Donor{
		ID:               m.ID,
		UserID:           m.UserID,
		BloodGroup:       m.BloodGroup,
		Status:           DonorStatus(m.Status),
		LastDonationDate: m.LastDonationDate,
		CreatedAt:        m.CreatedAt,
	}
}

// DonorToModel converts domain Donor to DonorModel.
func DonorToModel(d *Donor) *DonorModel {
	return &DonorModel{
		ID:               d.ID,
		UserID:           d.UserID,
		BloodGroup:       d.BloodGroup,
		Status:           string(d.Status),
		LastDonationDate: d.LastDonationDate,
		CreatedAt:        d.CreatedAt,
	}
}

// DonorSearchRequest carries donor search filters.
type DonorSearchRequest struct {
	BloodGroup string `form:"bloodGroup" binding:"required"`
	Address    string `form:"address"`
}
