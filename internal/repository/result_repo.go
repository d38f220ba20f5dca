package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// ResultRepository defines data operations for graded results. Results are
// insert-only; there is no update path.
type ResultRepository interface {
	GetByResultID(ctx context.Context, resultID int64) (models.Result, error)
	GetBySubmitID(ctx context.Context, submitID int64) (models.Result, error)
	ListByEmail(ctx context.Context, email string) ([]models.Result, error)
	ListAll(ctx context.Context) ([]models.Result, error)
	Create(ctx context.Context, result *models.Result) error
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository instantiates the repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) GetByResultID(ctx context.Context, resultID int64) (models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).Where("result_id = ?", resultID).First(&result).Error; err != nil {
		return models.Result{}, err
	}
	return result, nil
}

func (r *resultRepository) GetBySubmitID(ctx context.Context, submitID int64) (models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).Where("submit_id = ?", submitID).First(&result).Error; err != nil {
		return models.Result{}, err
	}
	return result, nil
}

func (r *resultRepository) ListByEmail(ctx context.Context, email string) ([]models.Result, error) {
	var results []models.Result
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("result_id DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) ListAll(ctx context.Context) ([]models.Result, error) {
	var results []models.Result
	if err := r.db.WithContext(ctx).Order("result_id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}
