package models

import "time"

// Blog is a published article. Body HTML is sanitized before it reaches the
// database. BlogID is the allocator-issued public identifier.
type Blog struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	BlogID      int64     `gorm:"not null;uniqueIndex" json:"blog_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	AuthorName  string    `gorm:"size:255" json:"author_name"`
	AuthorEmail string    `gorm:"size:255;index" json:"author_email"`
	CoverURL    string    `gorm:"size:512" json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
