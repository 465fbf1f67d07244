package models

import "time"

// RoomStatus is derived from occupancy, never set directly
type RoomStatus string

const (
	RoomVacant            RoomStatus = "vacant"
	RoomPartiallyOccupied RoomStatus = "partially_occupied"
	RoomOccupied          RoomStatus = "occupied"
)

// Room defines the room model based on the 'rooms' table
type Room struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	HallID           int64      `json:"hallId" db:"hall_id"`
	RoomNumber       string     `json:"roomNumber" db:"room_number" example:"304"`
	RoomType         string     `json:"roomType" db:"room_type" example:"4-bed"`
	Capacity         int        `json:"capacity" db:"capacity"`
	CurrentOccupancy int        `json:"currentOccupancy" db:"current_occupancy"`
	Status           RoomStatus `json:"status" db:"status"`
	Floor            int        `json:"floor" db:"floor"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// AvailableBeds returns the number of free positions in the room
func (r *Room) AvailableBeds() int {
	return r.Capacity - r.CurrentOccupancy
}

// StatusForOccupancy maps an occupancy count to the derived room status
func StatusForOccupancy(occupancy, capacity int) RoomStatus {
	switch {
	case occupancy <= 0:
		return RoomVacant
	case occupancy < capacity:
		return RoomPartiallyOccupied
	default:
		return RoomOccupied
	}
}
