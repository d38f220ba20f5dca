package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// Allocator errors.
var (
	// ErrCounterNotProvisioned indicates the singleton counter row is missing.
	// The row must be created at startup; allocation never creates it lazily.
	ErrCounterNotProvisioned = errors.New("counter row not provisioned")
	// ErrUnknownCounterKind indicates a kind with no backing column.
	ErrUnknownCounterKind = errors.New("unknown counter kind")
)

// CounterRepository issues unique, monotonically increasing public IDs per
// entity kind from the singleton counter row.
type CounterRepository interface {
	// Next atomically advances the sequence for the kind and returns the new
	// value. Concurrent callers for the same kind are serialized by the
	// database; no two calls can observe the same value.
	Next(ctx context.Context, kind models.CounterKind) (int64, error)
	// Ensure provisions the counter row with zeroed sequences if it does not
	// exist yet. Safe to call on every startup.
	Ensure(ctx context.Context) error
	// Current returns the last value handed out for the kind without
	// advancing it.
	Current(ctx context.Context, kind models.CounterKind) (int64, error)
}

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository instantiates the repository.
func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Next(ctx context.Context, kind models.CounterKind) (int64, error) {
	column := kind.Column()
	if column == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCounterKind, kind)
	}

	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The increment is a single UPDATE so two concurrent allocations can
		// never read the same value; the second waits on the row lock and
		// then increments on top of the first.
		update := tx.Model(&models.Counter{}).
			Where("name = ?", models.CounterName).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrCounterNotProvisioned
		}

		var counter models.Counter
		if err := tx.Where("name = ?", models.CounterName).First(&counter).Error; err != nil {
			return err
		}

		value = counter.Value(kind)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}

func (r *counterRepository) Ensure(ctx context.Context) error {
	counter := models.Counter{Name: models.CounterName}
	err := r.db.WithContext(ctx).
		Where("name = ?", models.CounterName).
		FirstOrCreate(&counter).Error
	if err != nil {
		return fmt.Errorf("failed to provision counter row: %w", err)
	}
	return nil
}

func (r *counterRepository) Current(ctx context.Context, kind models.CounterKind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCounterKind, kind)
	}

	var counter models.Counter
	err := r.db.WithContext(ctx).Where("name = ?", models.CounterName).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCounterNotProvisioned
		}
		return 0, err
	}

	return counter.Value(kind), nil
}
