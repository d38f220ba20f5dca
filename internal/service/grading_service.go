package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/grading"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/observability"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// Grading errors.
var (
	// ErrSubmissionNotFound indicates no attempt exists for the exam/email
	// pair.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrSubmissionNotFinalized indicates grading was requested while the
	// attempt is still in progress.
	ErrSubmissionNotFinalized = errors.New("submission not finalized")
)

// GradingService grades finalized submissions and persists the immutable
// result. Grading the same submission twice returns the stored result.
type GradingService interface {
	GradeSubmission(ctx context.Context, examID int64, email string) (dto.ResultResponse, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	exams       repository.ExamRepository
	results     repository.ResultRepository
	allocator   *IDAllocator
	publisher   ResultPublisher
	cache       *redis.Client
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewGradingService constructs a GradingService instance. publisher and cache
// may be nil when no event transport or cache is configured.
func NewGradingService(submissions repository.SubmissionRepository, exams repository.ExamRepository, results repository.ResultRepository, allocator *IDAllocator, publisher ResultPublisher, cache *redis.Client, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: submissions,
		exams:       exams,
		results:     results,
		allocator:   allocator,
		publisher:   publisher,
		cache:       cache,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		tracer:      otel.Tracer("github.com/assessly-platform/assessly-api/internal/service/grading"),
		now:         time.Now,
	}
}

func (s *gradingService) GradeSubmission(ctx context.Context, examID int64, email string) (dto.ResultResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GradeSubmission",
		trace.WithAttributes(attribute.Int64("exam.id", examID)))
	defer span.End()

	started := s.now()

	submission, err := s.submissions.GetByExamAndEmail(ctx, examID, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrSubmissionNotFound
		}
		return dto.ResultResponse{}, err
	}

	// Idempotent re-grade: if a result already exists for this attempt,
	// return it instead of scoring again.
	if existing, err := s.results.GetBySubmitID(ctx, submission.SubmitID); err == nil {
		s.logger.Debug().Int64("submit_id", submission.SubmitID).Msg("submission already graded")
		return dto.NewResultResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ResultResponse{}, err
	}

	if !submission.IsSubmitted() {
		return dto.ResultResponse{}, ErrSubmissionNotFinalized
	}

	exam, err := s.exams.GetByExamID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrExamNotFound
		}
		return dto.ResultResponse{}, err
	}

	policy, err := s.buildPolicy(exam, submission)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	answers, err := submission.AnswerSet()
	if err != nil {
		return dto.ResultResponse{}, fmt.Errorf("failed to decode answers: %w", err)
	}

	card, err := grading.Score(policy, answers)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	resultID, err := s.allocator.Next(ctx, models.KindResult)
	if err != nil {
		return dto.ResultResponse{}, fmt.Errorf("failed to allocate result id: %w", err)
	}

	status := models.ResultStatusFailed
	if card.Passed {
		status = models.ResultStatusPassed
	}

	result := models.Result{
		ResultID:          resultID,
		SubmitID:          submission.SubmitID,
		ExamID:            exam.ExamID,
		Email:             submission.Email,
		TotalMarks:        exam.TotalMarks,
		TotalRight:        card.TotalRight,
		TotalWrong:        card.TotalWrong,
		TotalSkip:         card.TotalSkip,
		TotalAnswered:     card.TotalAnswered,
		TotalNegativeMark: card.TotalNegativeMark,
		ObtainMarks:       card.ObtainMarks,
		Status:            status,
	}

	if err := s.results.Create(ctx, &result); err != nil {
		// A concurrent grade for the same submission may have won the
		// unique-index race on submit_id; its result is the canonical one.
		if existing, fetchErr := s.results.GetBySubmitID(ctx, submission.SubmitID); fetchErr == nil {
			return dto.NewResultResponse(existing), nil
		}
		return dto.ResultResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, resultsCacheKey(result.Email)).Err(); err != nil {
			s.logger.Warn().Err(err).Str("email", result.Email).Msg("failed to invalidate results cache")
		}
	}

	observability.Gradings().WithLabelValues(status).Inc()
	observability.GradingDuration().Observe(s.now().Sub(started).Seconds())
	span.SetAttributes(attribute.String("result.status", status))

	response := dto.NewResultResponse(result)

	if s.publisher != nil {
		if err := s.publisher.PublishGraded(ctx, response); err != nil {
			s.logger.Warn().Err(err).Int64("result_id", result.ResultID).Msg("failed to publish result event")
		}
	}

	s.logger.Info().
		Int64("result_id", result.ResultID).
		Int64("submit_id", result.SubmitID).
		Str("status", status).
		Float64("obtain_marks", result.ObtainMarks).
		Msg("submission graded")

	return response, nil
}

// buildPolicy assembles the scoring policy. The answer key comes from the
// submission's question snapshot so exam edits after the attempt started do
// not change how it is graded; the mark parameters come from the exam.
func (s *gradingService) buildPolicy(exam models.Exam, submission models.Submission) (grading.Policy, error) {
	questions, err := submission.QuestionSet()
	if err != nil {
		return grading.Policy{}, fmt.Errorf("failed to decode question snapshot: %w", err)
	}

	if len(questions) == 0 {
		// Older attempts may predate snapshotting; fall back to the exam's
		// own question set.
		questions, err = exam.QuestionSet()
		if err != nil {
			return grading.Policy{}, fmt.Errorf("failed to decode exam questions: %w", err)
		}
	}

	expected := make([]string, 0, len(questions))
	for _, question := range questions {
		expected = append(expected, question.Answer)
	}

	return grading.Policy{
		Answers:         expected,
		TotalMarks:      exam.TotalMarks,
		NegativeMarking: exam.NegativeMarking,
		NegativeMark:    exam.NegativeMark,
		PassMark:        exam.PassMark,
	}, nil
}
