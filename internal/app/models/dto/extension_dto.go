package dto

import (
	"time"

	"github.com/google/uuid"
)

// RequestExtensionRequest is a student's individual extension submission
type RequestExtensionRequest struct {
	NewExpiryDate time.Time `json:"newExpiryDate" binding:"required" example:"2025-06-01T00:00:00Z"`
	Reason        string    `json:"reason" binding:"required" example:"Final year thesis work requires hall residency"`
}

// RejectExtensionRequest carries the mandatory rejection reason
type RejectExtensionRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required" example:"Not eligible"`
}

// ApplyGroupPolicyRequest is a provost's bulk extension for a cohort
type ApplyGroupPolicyRequest struct {
	AcademicSession string    `json:"academicSession" binding:"required" example:"2020-2021"`
	Departments     []string  `json:"departments" binding:"required" example:"CSE,EEE"`
	NewExpiryDate   time.Time `json:"newExpiryDate" binding:"required" example:"2025-12-31T00:00:00Z"`
	Reason          string    `json:"reason" binding:"required" example:"Session extension due to academic calendar shift"`
}

// GroupPolicyResult reports the outcome of a group policy application.
// FailedStudentIDs lists students whose extension record was written but
// whose expiry recalculation failed; they need reconciliation, not a retry
// of the policy.
type GroupPolicyResult struct {
	BatchID          uuid.UUID `json:"batchId"`
	StudentCount     int       `json:"studentCount" example:"5"`
	FailedStudentIDs []int64   `json:"failedStudentIds,omitempty"`
}

// ReconcileResult reports a re-run of expiry recalculation for one student
type ReconcileResult struct {
	StudentID           int64     `json:"studentId"`
	EffectiveExpiryDate time.Time `json:"effectiveExpiryDate"`
}
