package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// SubmissionRepository defines data operations for exam attempts.
type SubmissionRepository interface {
	GetByExamAndEmail(ctx context.Context, examID int64, email string) (models.Submission, error)
	GetBySubmitID(ctx context.Context, submitID int64) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	// FinalizeAnswers attaches the final answers and flips the submission
	// from in-progress to submitted in one guarded update. It reports
	// whether the transition happened; false means the submission was
	// already submitted, so a concurrent or repeated submit cannot trigger
	// a second grading pass.
	FinalizeAnswers(ctx context.Context, submitID int64, answers datatypes.JSON) (bool, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) GetByExamAndEmail(ctx context.Context, examID int64, email string) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Where("email = ?", email).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *submissionRepository) GetBySubmitID(ctx context.Context, submitID int64) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).Where("submit_id = ?", submitID).First(&submission).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) FinalizeAnswers(ctx context.Context, submitID int64, answers datatypes.JSON) (bool, error) {
	update := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("submit_id = ?", submitID).
		Where("status = ?", models.SubmissionStatusInProgress).
		Updates(map[string]interface{}{
			"answers":    answers,
			"status":     models.SubmissionStatusSubmitted,
			"updated_at": time.Now(),
		})
	if update.Error != nil {
		return false, update.Error
	}
	return update.RowsAffected > 0, nil
}
