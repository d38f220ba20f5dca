package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// PaymentRepository defines data operations for checkout records.
type PaymentRepository interface {
	GetByTransactionRef(ctx context.Context, ref string) (models.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	// Settle moves a pending payment into a terminal status. It reports
	// whether the transition happened; a payment already settled is left
	// untouched so gateway callback retries cannot flip a terminal state.
	Settle(ctx context.Context, ref, status string) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByTransactionRef(ctx context.Context, ref string) (models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("transaction_ref = ?", ref).First(&payment).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("payment_id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Settle(ctx context.Context, ref, status string) (bool, error) {
	update := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("transaction_ref = ?", ref).
		Where("status = ?", models.PaymentStatusPending).
		Update("status", status)
	if update.Error != nil {
		return false, update.Error
	}
	return update.RowsAffected > 0, nil
}
