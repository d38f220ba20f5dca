package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// QuestionInput describes one question supplied on exam creation.
type QuestionInput struct {
	Title   string   `json:"title" validate:"required,min=1"`
	Options []string `json:"options" validate:"omitempty,min=2,dive,min=1"`
	Answer  string   `json:"ans" validate:"required,min=1"`
}

// ExamCreateRequest is the payload for creating a catalog exam.
type ExamCreateRequest struct {
	Title           string          `json:"title" validate:"required,min=3,max=255"`
	Description     string          `json:"description"`
	ExamType        string          `json:"exam_type" validate:"required,oneof=single batch"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,gt=0"`
	TotalMarks      float64         `json:"total_marks" validate:"required,gt=0"`
	PassMark        float64         `json:"pass_mark" validate:"gte=0"`
	NegativeMarking bool            `json:"is_negative_marks"`
	NegativeMark    float64         `json:"negative_mark" validate:"gte=0,lte=100"`
	Questions       []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// ExamResponse is the catalog view of an exam. The answer key is stripped;
// clients only see question titles and options.
type ExamResponse struct {
	ExamID          int64              `json:"exam_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	ExamType        string             `json:"exam_type"`
	DurationMinutes int                `json:"duration_minutes"`
	TotalMarks      float64            `json:"total_marks"`
	PassMark        float64            `json:"pass_mark"`
	NegativeMarking bool               `json:"is_negative_marks"`
	NegativeMark    float64            `json:"negative_mark"`
	Questions       []QuestionResponse `json:"questions"`
	CreatedAt       time.Time          `json:"created_at"`
}

// QuestionResponse is a question without its answer key.
type QuestionResponse struct {
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
}

// NewExamResponse maps an exam model to its public representation.
func NewExamResponse(exam models.Exam) (ExamResponse, error) {
	questions, err := exam.QuestionSet()
	if err != nil {
		return ExamResponse{}, err
	}

	publicQuestions := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		publicQuestions = append(publicQuestions, QuestionResponse{
			Title:   question.Title,
			Options: question.Options,
		})
	}

	return ExamResponse{
		ExamID:          exam.ExamID,
		Title:           exam.Title,
		Description:     exam.Description,
		ExamType:        exam.ExamType,
		DurationMinutes: exam.DurationMinutes,
		TotalMarks:      exam.TotalMarks,
		PassMark:        exam.PassMark,
		NegativeMarking: exam.NegativeMarking,
		NegativeMark:    exam.NegativeMark,
		Questions:       publicQuestions,
		CreatedAt:       exam.CreatedAt,
	}, nil
}

// NewExamResponseSlice maps a list of exams, skipping none.
func NewExamResponseSlice(exams []models.Exam) ([]ExamResponse, error) {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		response, err := NewExamResponse(exam)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}
