package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// Payment errors.
var (
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentAlreadySettled indicates a callback arrived for a payment
	// already in a terminal state.
	ErrPaymentAlreadySettled = errors.New("payment already settled")
)

// PaymentConfig carries the gateway redirect settings.
type PaymentConfig struct {
	GatewayBaseURL string
	GatewayStoreID string
	Currency       string
}

// PaymentService manages checkout records and gateway callbacks. The gateway
// wire protocol itself lives outside this service; it only produces the
// redirect URL and reacts to the success/fail callbacks.
type PaymentService interface {
	Checkout(ctx context.Context, payload dto.CheckoutRequest) (dto.CheckoutResponse, error)
	ConfirmSuccess(ctx context.Context, transactionRef string) (dto.PaymentResponse, error)
	ConfirmFailure(ctx context.Context, transactionRef string) (dto.PaymentResponse, error)
	ListByEmail(ctx context.Context, email string) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	courses   repository.CourseRepository
	allocator *IDAllocator
	validator *validator.Validate
	config    PaymentConfig
	logger    zerolog.Logger
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(payments repository.PaymentRepository, courses repository.CourseRepository, allocator *IDAllocator, validate *validator.Validate, config PaymentConfig, logger zerolog.Logger) PaymentService {
	return &paymentService{
		payments:  payments,
		courses:   courses,
		allocator: allocator,
		validator: validate,
		config:    config,
		logger:    logger.With().Str("component", "payment_service").Logger(),
	}
}

func (s *paymentService) Checkout(ctx context.Context, payload dto.CheckoutRequest) (dto.CheckoutResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CheckoutResponse{}, err
	}

	course, err := s.courses.GetByCourseID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CheckoutResponse{}, ErrCourseNotFound
		}
		return dto.CheckoutResponse{}, err
	}

	paymentID, err := s.allocator.Next(ctx, models.KindPayment)
	if err != nil {
		return dto.CheckoutResponse{}, fmt.Errorf("failed to allocate payment id: %w", err)
	}

	currency := s.config.Currency
	if currency == "" {
		currency = "BDT"
	}

	payment := models.Payment{
		PaymentID:      paymentID,
		CourseID:       course.CourseID,
		Email:          payload.Email,
		Amount:         course.Price,
		Currency:       currency,
		TransactionRef: uuid.NewString(),
		Status:         models.PaymentStatusPending,
	}

	if err := s.payments.Create(ctx, &payment); err != nil {
		return dto.CheckoutResponse{}, err
	}

	s.logger.Info().
		Int64("payment_id", payment.PaymentID).
		Int64("course_id", payment.CourseID).
		Msg("checkout created")

	return dto.CheckoutResponse{
		Payment:     dto.NewPaymentResponse(payment),
		GatewayURL:  s.gatewayURL(payment),
		RedirectNow: s.config.GatewayBaseURL != "",
	}, nil
}

func (s *paymentService) ConfirmSuccess(ctx context.Context, transactionRef string) (dto.PaymentResponse, error) {
	payment, err := s.settle(ctx, transactionRef, models.PaymentStatusPaid)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	enrollment := models.Enrollment{
		CourseID:  payment.CourseID,
		Email:     payment.Email,
		PaymentID: payment.PaymentID,
	}
	if err := s.courses.Enroll(ctx, &enrollment); err != nil {
		// The payment is settled either way; enrollment is recoverable from
		// the paid payment row.
		s.logger.Error().Err(err).Int64("payment_id", payment.PaymentID).Msg("failed to record enrollment")
	}

	return dto.NewPaymentResponse(payment), nil
}

func (s *paymentService) ConfirmFailure(ctx context.Context, transactionRef string) (dto.PaymentResponse, error) {
	payment, err := s.settle(ctx, transactionRef, models.PaymentStatusFailed)
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	return dto.NewPaymentResponse(payment), nil
}

func (s *paymentService) ListByEmail(ctx context.Context, email string) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponseSlice(payments), nil
}

func (s *paymentService) settle(ctx context.Context, transactionRef, status string) (models.Payment, error) {
	settled, err := s.payments.Settle(ctx, transactionRef, status)
	if err != nil {
		return models.Payment{}, err
	}

	payment, err := s.payments.GetByTransactionRef(ctx, transactionRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}

	if !settled {
		return models.Payment{}, fmt.Errorf("%w: %s", ErrPaymentAlreadySettled, payment.Status)
	}

	s.logger.Info().
		Int64("payment_id", payment.PaymentID).
		Str("status", payment.Status).
		Msg("payment settled")

	return payment, nil
}

func (s *paymentService) gatewayURL(payment models.Payment) string {
	if s.config.GatewayBaseURL == "" {
		return ""
	}

	query := url.Values{}
	query.Set("store_id", s.config.GatewayStoreID)
	query.Set("tran_id", payment.TransactionRef)
	query.Set("amount", fmt.Sprintf("%.2f", payment.Amount))
	query.Set("currency", payment.Currency)

	return fmt.Sprintf("%s/checkout?%s", s.config.GatewayBaseURL, query.Encode())
}
