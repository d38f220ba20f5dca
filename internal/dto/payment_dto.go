package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// CheckoutRequest starts a payment for a course.
type CheckoutRequest struct {
	CourseID int64  `json:"course_id" validate:"required,gt=0"`
	Email    string `json:"email" validate:"required,email"`
}

// CheckoutResponse carries the created payment and where to send the user.
type CheckoutResponse struct {
	Payment     PaymentResponse `json:"payment"`
	GatewayURL  string          `json:"gateway_url"`
	RedirectNow bool            `json:"redirect_now"`
}

// PaymentResponse is the API view of a checkout record.
type PaymentResponse struct {
	PaymentID      int64     `json:"payment_id"`
	CourseID       int64     `json:"course_id"`
	Email          string    `json:"email"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	TransactionRef string    `json:"transaction_ref"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPaymentResponse maps a payment model to its API representation.
func NewPaymentResponse(payment models.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      payment.PaymentID,
		CourseID:       payment.CourseID,
		Email:          payment.Email,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		TransactionRef: payment.TransactionRef,
		Status:         payment.Status,
		CreatedAt:      payment.CreatedAt,
	}
}

// NewPaymentResponseSlice maps a list of payments.
func NewPaymentResponseSlice(payments []models.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, NewPaymentResponse(payment))
	}
	return responses
}
