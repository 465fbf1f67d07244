package models

import "time"

// HallGender restricts which students a hall admits
type HallGender string

const (
	HallMale   HallGender = "male"
	HallFemale HallGender = "female"
)

// Hall defines the hall model based on the 'halls' table
type Hall struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	Name             string     `json:"name" db:"name" example:"Shaheed Salam Hall"`
	Gender           HallGender `json:"gender" db:"gender" example:"male"`
	Location         string     `json:"location" db:"location"`
	Description      *string    `json:"description,omitempty" db:"description"`
	TotalFloors      int        `json:"totalFloors" db:"total_floors"`
	MonthlyRent      float64    `json:"monthlyRent" db:"monthly_rent"`
	ProvostID        *int64     `json:"provostId,omitempty" db:"provost_id"`
	SecretCode       string     `json:"-" db:"secret_code"` // provost registration gate
	TotalCapacity    int        `json:"totalCapacity" db:"total_capacity"`
	CurrentOccupants int        `json:"currentOccupants" db:"current_occupants"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// AvailableCapacity returns the number of unoccupied places in the hall
func (h *Hall) AvailableCapacity() int {
	return h.TotalCapacity - h.CurrentOccupants
}
