package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ClearanceReason is why a student requests hall clearance
type ClearanceReason string

const (
	ClearanceSemesterFinal ClearanceReason = "semester_final"
	ClearanceDeallocation  ClearanceReason = "deallocation"
	ClearanceOther         ClearanceReason = "other"
)

// ClearanceStatus is the review state of a clearance request
type ClearanceStatus string

const (
	ClearancePending  ClearanceStatus = "pending"
	ClearanceApproved ClearanceStatus = "approved"
	ClearanceRejected ClearanceStatus = "rejected"
)

// HallClearance defines a clearance request based on the 'hall_clearances'
// table. ClearanceCode is a derived human-readable identifier assigned at
// creation time.
type HallClearance struct {
	ID              int64           `json:"id" db:"id" example:"1"`
	ClearanceCode   string          `json:"clearanceCode" db:"clearance_code" example:"CL-CSE-4-2025-A1B2C3"`
	StudentID       int64           `json:"studentId" db:"student_id"`
	HallID          int64           `json:"hallId" db:"hall_id"`
	Department      string          `json:"department" db:"department"`
	ClearanceReason ClearanceReason `json:"clearanceReason" db:"clearance_reason"`
	Semester        *int            `json:"semester,omitempty" db:"semester"` // required for semester_final
	Year            int             `json:"year" db:"year"`
	ReasonDetails   *string         `json:"reasonDetails,omitempty" db:"reason_details"` // required for other
	Status          ClearanceStatus `json:"status" db:"status"`
	RejectionReason *string         `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ApprovedBy      *int64          `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewClearanceCode derives the human-readable clearance identifier:
// CL-<DEPT>-<SEMESTER|DE|OT>-<YEAR>-<random suffix>.
func NewClearanceCode(department string, reason ClearanceReason, semester *int, year int) string {
	middle := "OT"
	switch reason {
	case ClearanceDeallocation:
		middle = "DE"
	case ClearanceSemesterFinal:
		if semester != nil {
			middle = fmt.Sprintf("%d", *semester)
		}
	}
	return fmt.Sprintf("CL-%s-%s-%d-%s", strings.ToUpper(department), middle, year, randomSuffix())
}

func randomSuffix() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
