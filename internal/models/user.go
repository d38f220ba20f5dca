package models

import "time"

// User roles as stored on the user record.
const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// User represents a registered account. Accounts are keyed publicly by email;
// the numeric primary key never leaves the persistence layer.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"user_name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"user_email"`
	Role      string    `gorm:"size:32;not null;default:user" json:"user_role"`
	PhotoURL  string    `gorm:"size:512" json:"user_photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsRegular reports whether the account carries the plain user role.
func (u User) IsRegular() bool {
	return u.Role == UserRoleUser
}
