package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// ExamStartRequest opens an attempt at an exam.
type ExamStartRequest struct {
	ExamID int64  `json:"exam_id" validate:"required,gt=0"`
	Email  string `json:"email" validate:"required,email"`
}

// ExamSubmitRequest attaches the final answers to an attempt. Answers is
// index-aligned with the snapshotted question set; empty strings mark skipped
// questions.
type ExamSubmitRequest struct {
	ExamID  int64    `json:"exam_id" validate:"required,gt=0"`
	Email   string   `json:"email" validate:"required,email"`
	Answers []string `json:"student_answers" validate:"required"`
}

// SubmissionResponse is the API view of an exam attempt.
type SubmissionResponse struct {
	SubmitID  int64              `json:"submit_id"`
	ExamID    int64              `json:"exam_id"`
	Email     string             `json:"email"`
	Status    string             `json:"status"`
	Questions []QuestionResponse `json:"questions"`
	StartedAt time.Time          `json:"started_at"`
}

// NewSubmissionResponse maps a submission model to its API representation.
// The answer key inside the question snapshot is stripped.
func NewSubmissionResponse(submission models.Submission) (SubmissionResponse, error) {
	questions, err := submission.QuestionSet()
	if err != nil {
		return SubmissionResponse{}, err
	}

	publicQuestions := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		publicQuestions = append(publicQuestions, QuestionResponse{
			Title:   question.Title,
			Options: question.Options,
		})
	}

	return SubmissionResponse{
		SubmitID:  submission.SubmitID,
		ExamID:    submission.ExamID,
		Email:     submission.Email,
		Status:    submission.Status,
		Questions: publicQuestions,
		StartedAt: submission.StartedAt,
	}, nil
}
