package domain

import "time"

// OTP is a one-time verification code sent to an email address during
// registration. Codes expire and are consumed on successful use.
type OTP struct {
	ID        string
	Email     string
	Code      string
	ExpiresAt time.Time
	Consumed  bool
	CreatedAt time.Time
}

// OTPModel is the GORM model for the otps table.
type OTPModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Consumed  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for OTPModel.
func (OTPModel) TableName() string {
	return "otps"
}

// ToDomain converts OTPModel to domain OTP.
func (m *OTPModel) ToDomain() *OTP {
	return &OTP{
		ID:        m.ID,
		Email:     m.Email,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		Consumed:  m.Consumed,
		CreatedAt: m.CreatedAt,
	}
}

// OTPToModel converts domain OTP to OTPModel.
func OTPToModel(o *OTP) *OTPModel {
	return &OTPModel{
		ID:        o.ID,
		Email:     o.Email,
		Code:      o.Code,
		ExpiresAt: o.ExpiresAt,
		Consumed:  o.Consumed,
		CreatedAt: o.CreatedAt,
	}
}
