package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtensionType distinguishes student-initiated requests from bulk policies
type ExtensionType string

const (
	ExtensionIndividual  ExtensionType = "individual_request"
	ExtensionGroupPolicy ExtensionType = "group_policy"
)

// ExtensionStatus is the approval state of an extension record. Transitions
// are append-only: pending may become approved or rejected, both terminal.
type ExtensionStatus string

const (
	ExtensionPending  ExtensionStatus = "pending"
	ExtensionApproved ExtensionStatus = "approved"
	ExtensionRejected ExtensionStatus = "rejected"
)

// ResidencyExtension defines an extension record based on the
// 'residency_extensions' table. Records own the reference to the student;
// per-student history is always a query by student id. Records are mutated
// only on approve/reject and never deleted.
type ResidencyExtension struct {
	ID              int64           `json:"id" db:"id" example:"1"`
	StudentID       int64           `json:"studentId" db:"student_id"`
	HallID          int64           `json:"hallId" db:"hall_id"`
	NewExpiryDate   time.Time       `json:"newExpiryDate" db:"new_expiry_date"`
	Type            ExtensionType   `json:"type" db:"type" example:"individual_request"`
	Status          ExtensionStatus `json:"status" db:"status" example:"pending"`
	BatchID         *uuid.UUID      `json:"batchId,omitempty" db:"batch_id"` // set only for group policy, shared across the batch
	AcademicSession *string         `json:"academicSession,omitempty" db:"academic_session"`
	Departments     []string        `json:"departments,omitempty" db:"departments"`
	Reason          string          `json:"reason" db:"reason"`
	RejectionReason *string         `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ProcessedBy     *int64          `json:"processedBy,omitempty" db:"processed_by"`
	ProcessedAt     *time.Time      `json:"processedAt,omitempty" db:"processed_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// GroupPolicyBatch is one summary row of the group policy history
// aggregation: all records sharing a batch id collapsed into a single entry.
type GroupPolicyBatch struct {
	BatchID         uuid.UUID `json:"batchId" db:"batch_id"`
	NewExpiryDate   time.Time `json:"newExpiryDate" db:"new_expiry_date"`
	Reason          string    `json:"reason" db:"reason"`
	AppliedByID     int64     `json:"appliedById" db:"applied_by_id"`
	AppliedByName   string    `json:"appliedByName" db:"applied_by_name"`
	AppliedAt       time.Time `json:"appliedAt" db:"applied_at"`
	AcademicSession string    `json:"academicSession" db:"academic_session"`
	Departments     []string  `json:"departments" db:"departments"`
	StudentCount    int       `json:"studentCount" db:"student_count"`
}
