package models

import "time"

// Payment statuses over the checkout lifecycle.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment tracks one checkout attempt against the payment gateway. PaymentID
// is the allocator-issued public identifier; TransactionRef is the opaque
// reference handed to the gateway.
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	PaymentID      int64     `gorm:"not null;uniqueIndex" json:"payment_id"`
	CourseID       int64     `gorm:"not null;index" json:"course_id"`
	Email          string    `gorm:"size:255;not null;index" json:"email"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Currency       string    `gorm:"size:8;not null;default:BDT" json:"currency"`
	TransactionRef string    `gorm:"size:64;not null;uniqueIndex" json:"transaction_ref"`
	Status         string    `gorm:"size:32;not null;index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsSettled reports whether the payment reached a terminal state.
func (p Payment) IsSettled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed
}
