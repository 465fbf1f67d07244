package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Provosts, vice
// provosts, the VC and students all share this table; students additionally
// carry a StudentProfile row.
type User struct {
	ID              int64          `json:"id" db:"id" example:"1"`
	Name            string         `json:"name" db:"name" example:"Rahim Uddin"`
	Email           string         `json:"email" db:"email" example:"rahim@university.edu"`
	Password        string         `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role            RoleType       `json:"role" db:"role" example:"student"`
	Phone           *string        `json:"phone,omitempty" db:"phone"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" db:"approval_status" example:"pending"`
	RejectionReason *string        `json:"rejectionReason,omitempty" db:"rejection_reason"`
	HallID          *int64         `json:"hallId,omitempty" db:"hall_id"`
	LastLoginAt     *time.Time     `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Hall    *Hall           `json:"hall,omitempty"`
	Profile *StudentProfile `json:"studentProfile,omitempty"`
}

// StudentProfile defines residency details for users with the student role,
// based on the 'student_profiles' table.
//
// BaseExpiryDate is the cohort default, set once (usually propagated from a
// session peer at registration). EffectiveExpiryDate is derived state: the
// maximum of the base date and every approved extension date for the
// student, recomputed from scratch whenever the approved set may have
// changed. It is never maintained incrementally.
type StudentProfile struct {
	UserID              int64        `json:"userId" db:"user_id"`
	Roll                string       `json:"roll" db:"roll"`
	Registration        string       `json:"registration" db:"registration"`
	AcademicSession     string       `json:"academicSession" db:"academic_session" example:"2020-2021"`
	AdmissionYear       int          `json:"admissionYear" db:"admission_year"`
	Department          string       `json:"department" db:"department" example:"CSE"`
	RoomID              *int64       `json:"roomId,omitempty" db:"room_id"`
	Position            RoomPosition `json:"position" db:"position" example:"A"`
	BaseExpiryDate      *time.Time   `json:"baseExpiryDate,omitempty" db:"base_expiry_date"`
	EffectiveExpiryDate *time.Time   `json:"effectiveExpiryDate,omitempty" db:"effective_expiry_date"`
	Balance             float64      `json:"balance" db:"balance"`
	CreatedAt           time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Room *Room `json:"room,omitempty"`
}

// StudentResidency is the projection of a student the expiry engine works
// on: cohort identifiers plus the two expiry fields.
type StudentResidency struct {
	UserID              int64      `json:"userId" db:"user_id"`
	HallID              int64      `json:"hallId" db:"hall_id"`
	AcademicSession     string     `json:"academicSession" db:"academic_session"`
	Department          string     `json:"department" db:"department"`
	BaseExpiryDate      *time.Time `json:"baseExpiryDate,omitempty" db:"base_expiry_date"`
	EffectiveExpiryDate *time.Time `json:"effectiveExpiryDate,omitempty" db:"effective_expiry_date"`
}
