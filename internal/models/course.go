package models

import "time"

// Course is a purchasable catalog entry. CourseID is the allocator-issued
// public identifier.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CourseID    int64     `gorm:"not null;uniqueIndex" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Instructor  string    `gorm:"size:255" json:"instructor"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	CoverURL    string    `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrollment records that a user gained access to a course, created when the
// corresponding payment succeeds.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  int64     `gorm:"not null;index:idx_enrollment_course_email,unique" json:"course_id"`
	Email     string    `gorm:"size:255;not null;index:idx_enrollment_course_email,unique" json:"email"`
	PaymentID int64     `gorm:"not null" json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
}
