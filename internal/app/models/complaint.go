package models

import "time"

// ComplaintCategory classifies a complaint
type ComplaintCategory string

const (
	ComplaintElectricity ComplaintCategory = "electricity"
	ComplaintCleaning    ComplaintCategory = "cleaning"
	ComplaintWater       ComplaintCategory = "water"
	ComplaintMaintenance ComplaintCategory = "maintenance"
	ComplaintSecurity    ComplaintCategory = "security"
	ComplaintInternet    ComplaintCategory = "internet"
	ComplaintFurniture   ComplaintCategory = "furniture"
	ComplaintOther       ComplaintCategory = "other"
)

// IsValidComplaintCategory reports whether c is a known category
func IsValidComplaintCategory(c string) bool {
	switch ComplaintCategory(c) {
	case ComplaintElectricity, ComplaintCleaning, ComplaintWater,
		ComplaintMaintenance, ComplaintSecurity, ComplaintInternet,
		ComplaintFurniture, ComplaintOther:
		return true
	}
	return false
}

// ComplaintStatus is the handling state of a complaint
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintRejected   ComplaintStatus = "rejected"
)

// Complaint defines the complaint model based on the 'complaints' table
type Complaint struct {
	ID          int64             `json:"id" db:"id" example:"1"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Category    ComplaintCategory `json:"category" db:"category" example:"electricity"`
	Status      ComplaintStatus   `json:"status" db:"status" example:"pending"`
	Priority    int               `json:"priority" db:"priority" example:"3"` // 1 (low) to 5 (urgent)
	HallID      int64             `json:"hallId" db:"hall_id"`
	CreatedBy   int64             `json:"createdBy" db:"created_by"`
	AssignedTo  *int64            `json:"assignedTo,omitempty" db:"assigned_to"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty" db:"resolved_at"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}
