package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// ResultResponse is the API view of a graded result.
type ResultResponse struct {
	ResultID          int64     `json:"result_id"`
	SubmitID          int64     `json:"submit_id"`
	ExamID            int64     `json:"exam_id"`
	Email             string    `json:"email"`
	TotalMarks        float64   `json:"total_marks"`
	TotalRight        int       `json:"total_right"`
	TotalWrong        int       `json:"total_wrong"`
	TotalSkip         int       `json:"total_skip"`
	TotalAnswered     int       `json:"total_answered"`
	TotalNegativeMark float64   `json:"total_negative_mark"`
	ObtainMarks       float64   `json:"obtain_marks"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewResultResponse maps a result model to its API representation.
func NewResultResponse(result models.Result) ResultResponse {
	return ResultResponse{
		ResultID:          result.ResultID,
		SubmitID:          result.SubmitID,
		ExamID:            result.ExamID,
		Email:             result.Email,
		TotalMarks:        result.TotalMarks,
		TotalRight:        result.TotalRight,
		TotalWrong:        result.TotalWrong,
		TotalSkip:         result.TotalSkip,
		TotalAnswered:     result.TotalAnswered,
		TotalNegativeMark: result.TotalNegativeMark,
		ObtainMarks:       result.ObtainMarks,
		Status:            result.Status,
		CreatedAt:         result.CreatedAt,
	}
}

// NewResultResponseSlice maps a list of results.
func NewResultResponseSlice(results []models.Result) []ResultResponse {
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewResultResponse(result))
	}
	return responses
}

// CertificateRequest is the payload for generating a completion certificate.
type CertificateRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=120"`
	Course string `json:"course" validate:"required,min=2,max=160"`
	Date   string `json:"date" validate:"required"`
}
