package dto

// RegisterStudentRequest carries a student self-registration
type RegisterStudentRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required"`
	Phone           *string `json:"phone,omitempty"`
	Roll            string  `json:"roll" binding:"required"`
	Registration    string  `json:"registration" binding:"required"`
	AcademicSession string  `json:"academicSession" binding:"required" example:"2020-2021"`
	AdmissionYear   int     `json:"admissionYear" binding:"required"`
	Department      string  `json:"department" binding:"required" example:"CSE"`
	HallID          int64   `json:"hallId" binding:"required"`
	RoomID          int64   `json:"roomId" binding:"required"`
	Position        string  `json:"position" binding:"required" example:"A"`
}

// RegisterProvostRequest carries a provost or vice provost registration,
// gated by the hall's secret code
type RegisterProvostRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	Phone      *string `json:"phone,omitempty"`
	HallID     int64   `json:"hallId" binding:"required"`
	SecretCode string  `json:"secretCode" binding:"required"`
}

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token and basic identity
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
	UserID      int64  `json:"userId"`
	Role        string `json:"role" example:"student"`
}

// RegisteredResponse acknowledges a registration awaiting approval
type RegisteredResponse struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message" example:"Registration submitted. Awaiting approval."`
}
