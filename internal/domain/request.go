package domain

import "time"

// RequestStatus represents the lifecycle state of a blood request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// BloodRequest represents a recipient's request for blood. Once approved,
// AssignedDonorID is set and the request doubles as the link record the
// chat resolver consumes: a chat is only valid while status is approved
// and a donor is assigned.
type BloodRequest struct {
	ID                 string        `json:"id"`
	RecipientUserID    string        `json:"recipient_user_id"`
	RequiredBloodGroup string        `json:"required_blood_group"`
	HospitalName       string        `json:"hospital_name"`
	Status             RequestStatus `json:"status"`
	ApprovedByAdminID  string        `json:"approved_by_admin_id,omitempty"`
	AssignedDonorID    string        `json:"assigned_donor_id,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// BloodRequestModel is the GORM model for the blood_requests table.
type BloodRequestModel struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey"`
	RecipientUserID    string    `gorm:"type:varchar(36);not null;index"`
	RequiredBloodGroup string    `gorm:"type:varchar(5);not null"`
	HospitalName       string    `gorm:"type:varchar(255);not null"`
	Status             string    `gorm:"type:varchar(10);not null;default:pending;index"`
	ApprovedByAdminID  string    `gorm:"type:varchar(36)"`
	AssignedDonorID    string    `gorm:"type:varchar(36);index"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for BloodRequestModel.
func (BloodRequestModel) TableName() string {
	return "blood_requests"
}

// ToDomain converts BloodRequestModel to domain BloodRequest.
func (m *BloodRequestModel) ToDomain() *BloodRequest {
	return &BloodRequest{
		ID:                 m.ID,
		RecipientUserID:    m.RecipientUserID,
		RequiredBloodGroup: m.RequiredBloodGroup,
		HospitalName:       m.HospitalName,
		Status:             RequestStatus(m.Status),
		ApprovedByAdminID:  m.ApprovedByAdminID,
		AssignedDonorID:    m.AssignedDonorID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// BloodRequestToModel converts domain BloodRequest to BloodRequestModel.
func BloodRequestToModel(r *BloodRequest) *BloodRequestModel {
	return &BloodRequestModel{
		ID:                 r.ID,
		RecipientUserID:    r.RecipientUserID,
		RequiredBloodGroup: r.RequiredBloodGroup,
		HospitalName:       r.HospitalName,
		Status:             string(r.Status),
		ApprovedByAdminID:  r.ApprovedByAdminID,
		AssignedDonorID:    r.AssignedDonorID,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// CreateRequestPayload is the payload for creating a blood request.
type CreateRequestPayload struct {
	RequiredBloodGroup string `json:"requiredBloodGroup" binding:"required"`
	HospitalName       string `json:"hospitalName" binding:"required"`
}

// PendingRequestView is the admin dashboard row: a pending request joined
// with its recipient's contact details.
type PendingRequestView struct {
	ID                 string    `json:"id"`
	RequiredBloodGroup string    `json:"required_blood_group"`
	HospitalName       string    `json:"hospital_name"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	RecipientName      string    `json:"recipient_name"`
	RecipientEmail     string    `json:"recipient_email"`
}

// ConversationSummary lists one approved request the caller may chat on,
// with both party names resolved for display.
type ConversationSummary struct {
	ID                 string `json:"id"`
	RequiredBloodGroup string `json:"required_blood_group"`
	RecipientName      string `json:"recipient_name"`
	DonorName          string `json:"donor_name"`
}
