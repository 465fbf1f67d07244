package models

import "time"

// NoticeVisibility controls who can read a notice
type NoticeVisibility string

const (
	NoticePublic  NoticeVisibility = "public"
	NoticePrivate NoticeVisibility = "private" // scoped to one hall
)

// Notice defines the notice model based on the 'notices' table
type Notice struct {
	ID         int64            `json:"id" db:"id" example:"1"`
	Title      string           `json:"title" db:"title"`
	Content    string           `json:"content" db:"content"`
	Visibility NoticeVisibility `json:"visibility" db:"visibility" example:"public"`
	HallID     *int64           `json:"hallId,omitempty" db:"hall_id"` // required when private
	CreatedBy  int64            `json:"createdBy" db:"created_by"`
	ExpiryDate *time.Time       `json:"expiryDate,omitempty" db:"expiry_date"`
	IsActive   bool             `json:"isActive" db:"is_active"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}

// Expired reports whether the notice has passed its expiry date
func (n *Notice) Expired(now time.Time) bool {
	return n.ExpiryDate != nil && n.ExpiryDate.Before(now)
}
