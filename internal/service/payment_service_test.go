package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

func setupPaymentService(t *testing.T, config PaymentConfig) (PaymentService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Counter{},
		&models.Course{},
		&models.Enrollment{},
		&models.Payment{},
	))

	counters := repository.NewCounterRepository(db)
	require.NoError(t, counters.Ensure(context.Background()))

	require.NoError(t, db.Create(&models.Course{CourseID: 1, Title: "Go from scratch", Price: 1500}).Error)

	payments := repository.NewPaymentRepository(db)
	courses := repository.NewCourseRepository(db)
	svc := NewPaymentService(payments, courses, NewIDAllocator(counters), validator.New(), config, zerolog.Nop())
	return svc, db
}

func TestPaymentServiceCheckout(t *testing.T) {
	svc, _ := setupPaymentService(t, PaymentConfig{
		GatewayBaseURL: "https://sandbox.gateway.example",
		GatewayStoreID: "assessly-test",
	})

	checkout, err := svc.Checkout(context.Background(), dto.CheckoutRequest{CourseID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	require.Equal(t, int64(1), checkout.Payment.PaymentID)
	require.Equal(t, models.PaymentStatusPending, checkout.Payment.Status)
	require.Equal(t, 1500.0, checkout.Payment.Amount)
	require.NotEmpty(t, checkout.Payment.TransactionRef)
	require.True(t, checkout.RedirectNow)
	require.Contains(t, checkout.GatewayURL, "https://sandbox.gateway.example/checkout?")
	require.Contains(t, checkout.GatewayURL, "tran_id="+checkout.Payment.TransactionRef)
}

func TestPaymentServiceCheckoutUnknownCourse(t *testing.T) {
	svc, _ := setupPaymentService(t, PaymentConfig{})

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{CourseID: 42, Email: "jane@example.com"})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestPaymentServiceConfirmSuccessEnrolls(t *testing.T) {
	svc, db := setupPaymentService(t, PaymentConfig{})
	ctx := context.Background()

	checkout, err := svc.Checkout(ctx, dto.CheckoutRequest{CourseID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	paid, err := svc.ConfirmSuccess(ctx, checkout.Payment.TransactionRef)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, paid.Status)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&enrollment).Error)
	require.Equal(t, int64(1), enrollment.CourseID)
	require.Equal(t, paid.PaymentID, enrollment.PaymentID)
}

func TestPaymentServiceSettleIsFinal(t *testing.T) {
	svc, _ := setupPaymentService(t, PaymentConfig{})
	ctx := context.Background()

	checkout, err := svc.Checkout(ctx, dto.CheckoutRequest{CourseID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = svc.ConfirmSuccess(ctx, checkout.Payment.TransactionRef)
	require.NoError(t, err)

	// A late failure callback cannot flip a paid payment.
	_, err = svc.ConfirmFailure(ctx, checkout.Payment.TransactionRef)
	require.ErrorIs(t, err, ErrPaymentAlreadySettled)

	payments, err := svc.ListByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, models.PaymentStatusPaid, payments[0].Status)
}

func TestPaymentServiceConfirmUnknownRef(t *testing.T) {
	svc, _ := setupPaymentService(t, PaymentConfig{})

	_, err := svc.ConfirmSuccess(context.Background(), "no-such-ref")
	require.ErrorIs(t, err, ErrPaymentNotFound)
}
