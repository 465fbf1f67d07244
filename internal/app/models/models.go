package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent     RoleType = "student"
	RoleProvost     RoleType = "provost"
	RoleViceProvost RoleType = "vice_provost"
	RoleVC          RoleType = "vc"
)

// ApprovalStatus tracks the review state of a user account
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalFormer   ApprovalStatus = "former"
)

// Departments recognised by the university. Group policies and peer lookups
// filter on these codes.
var Departments = []string{
	"CSE", "EEE", "EECE", "ICE", "CIVIL", "ARCH", "URP",
	"MATH", "PHY", "PHARM", "CHEM", "STAT", "BBA", "THM",
	"ECO", "BAN", "SOCIAL WORK", "ENG", "PUBLIC A", "HISTORY", "GEOGRAPHY",
}

// IsValidDepartment reports whether code is a known department code
func IsValidDepartment(code string) bool {
	for _, d := range Departments {
		if d == code {
			return true
		}
	}
	return false
}

// RoomPosition is a bed position within a room
type RoomPosition string

const (
	PositionA RoomPosition = "A"
	PositionB RoomPosition = "B"
	PositionC RoomPosition = "C"
	PositionD RoomPosition = "D"
)
