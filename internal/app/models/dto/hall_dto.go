package dto

// CreateHallRequest creates a hall (VC only)
type CreateHallRequest struct {
	Name        string  `json:"name" binding:"required"`
	Gender      string  `json:"gender" binding:"required" example:"male"`
	Location    string  `json:"location" binding:"required"`
	Description *string `json:"description,omitempty"`
	TotalFloors int     `json:"totalFloors" binding:"required"`
	MonthlyRent   float64 `json:"monthlyRent" binding:"required"`
	SecretCode    string  `json:"secretCode" binding:"required"`
	TotalCapacity int     `json:"totalCapacity" binding:"required"`
}

// CreateRoomRequest adds a room to a hall
type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required" example:"304"`
	RoomType   string `json:"roomType" binding:"required" example:"4-bed"`
	Capacity   int    `json:"capacity" binding:"required"`
	Floor      int    `json:"floor" binding:"required"`
}

// RejectUserRequest carries the reason for rejecting a pending account
type RejectUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignProvostRequest assigns an approved provost to a hall
type AssignProvostRequest struct {
	HallID int64 `json:"hallId" binding:"required"`
}
