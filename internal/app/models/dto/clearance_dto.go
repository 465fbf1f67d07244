package dto

// CreateClearanceRequest is a student's hall clearance submission
type CreateClearanceRequest struct {
	ClearanceReason string  `json:"clearanceReason" binding:"required" example:"semester_final"`
	Semester        *int    `json:"semester,omitempty" example:"4"`
	Year            int     `json:"year" binding:"required" example:"2025"`
	ReasonDetails   *string `json:"reasonDetails,omitempty"`
}

// RejectClearanceRequest carries the mandatory rejection reason
type RejectClearanceRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}
