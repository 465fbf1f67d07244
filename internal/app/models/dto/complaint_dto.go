package dto

// CreateComplaintRequest files a complaint for the student's hall
type CreateComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required" example:"electricity"`
	Priority    int    `json:"priority,omitempty" example:"3"`
}

// UpdateComplaintStatusRequest moves a complaint through its lifecycle
type UpdateComplaintStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"in_progress"`
	Note   *string `json:"note,omitempty"`
}

// CreateNoticeRequest publishes a notice
type CreateNoticeRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	Visibility string  `json:"visibility,omitempty" example:"public"`
	ExpiryDate *string `json:"expiryDate,omitempty" example:"2025-12-31T00:00:00Z"`
}
