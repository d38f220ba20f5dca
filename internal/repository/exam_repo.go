package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// ExamFilter narrows exam catalog queries.
type ExamFilter struct {
	ExamType *string
	Limit    int
}

// ExamRepository defines data operations for the exam catalog.
type ExamRepository interface {
	List(ctx context.Context, filter ExamFilter) ([]models.Exam, error)
	GetByExamID(ctx context.Context, examID int64) (models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository instantiates the repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) List(ctx context.Context, filter ExamFilter) ([]models.Exam, error) {
	query := r.db.WithContext(ctx).Model(&models.Exam{})

	if filter.ExamType != nil {
		query = query.Where("exam_type = ?", *filter.ExamType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var exams []models.Exam
	if err := query.Order("exam_id DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) GetByExamID(ctx context.Context, examID int64) (models.Exam, error) {
	var exam models.Exam
	if err := r.db.WithContext(ctx).Where("exam_id = ?", examID).First(&exam).Error; err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}
