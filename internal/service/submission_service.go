package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/grading"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// SubmissionService manages the exam-taking flow: starting an attempt and
// finalizing it, which hands off to the grading service.
type SubmissionService interface {
	// Start opens an attempt at the exam. Starting an exam that already has
	// an attempt for this email returns the existing attempt.
	Start(ctx context.Context, payload dto.ExamStartRequest) (dto.SubmissionResponse, error)
	// Submit attaches the final answers, flips the attempt to submitted
	// exactly once and grades it. Repeated submits return the stored result
	// without grading again.
	Submit(ctx context.Context, payload dto.ExamSubmitRequest) (dto.ResultResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	exams       repository.ExamRepository
	grader      GradingService
	allocator   *IDAllocator
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, exams repository.ExamRepository, grader GradingService, allocator *IDAllocator, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		exams:       exams,
		grader:      grader,
		allocator:   allocator,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Start(ctx context.Context, payload dto.ExamStartRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if existing, err := s.submissions.GetByExamAndEmail(ctx, payload.ExamID, payload.Email); err == nil {
		return dto.NewSubmissionResponse(existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	exam, err := s.exams.GetByExamID(ctx, payload.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrExamNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submitID, err := s.allocator.Next(ctx, models.KindSubmit)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to allocate submit id: %w", err)
	}

	submission := models.Submission{
		SubmitID:  submitID,
		ExamID:    exam.ExamID,
		Email:     payload.Email,
		Questions: exam.Questions,
		Status:    models.SubmissionStatusInProgress,
		StartedAt: s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		// The unique index on (exam_id, email) may have been hit by a
		// concurrent start; surface that attempt instead.
		if existing, fetchErr := s.submissions.GetByExamAndEmail(ctx, payload.ExamID, payload.Email); fetchErr == nil {
			return dto.NewSubmissionResponse(existing)
		}
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Int64("submit_id", submission.SubmitID).
		Int64("exam_id", submission.ExamID).
		Msg("exam attempt started")

	return dto.NewSubmissionResponse(submission)
}

func (s *submissionService) Submit(ctx context.Context, payload dto.ExamSubmitRequest) (dto.ResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResultResponse{}, err
	}

	submission, err := s.submissions.GetByExamAndEmail(ctx, payload.ExamID, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrSubmissionNotFound
		}
		return dto.ResultResponse{}, err
	}

	// Reject oversized answer sets before touching the stored attempt. The
	// status flip below is one-shot, so finalizing first would wedge the
	// attempt with answers grading can never accept.
	questions, err := submission.QuestionSet()
	if err != nil {
		return dto.ResultResponse{}, fmt.Errorf("failed to decode question snapshot: %w", err)
	}
	if len(questions) > 0 && len(payload.Answers) > len(questions) {
		return dto.ResultResponse{}, grading.ErrAnswerCountMismatch
	}

	encoded, err := json.Marshal(payload.Answers)
	if err != nil {
		return dto.ResultResponse{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	flipped, err := s.submissions.FinalizeAnswers(ctx, submission.SubmitID, datatypes.JSON(encoded))
	if err != nil {
		return dto.ResultResponse{}, err
	}
	if !flipped {
		// Already submitted. Grading is idempotent, so this returns the
		// stored result for client retries instead of erroring.
		s.logger.Debug().Int64("submit_id", submission.SubmitID).Msg("repeat submit ignored")
	}

	return s.grader.GradeSubmission(ctx, payload.ExamID, payload.Email)
}
