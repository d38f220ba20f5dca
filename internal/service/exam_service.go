package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// ErrExamNotFound indicates the referenced exam does not exist.
var ErrExamNotFound = errors.New("exam not found")

// ErrUnknownListMode indicates an unsupported catalog list mode.
var ErrUnknownListMode = errors.New("unknown exam list mode")

// Catalog list modes carried over from the public API surface: "single"
// filters to single exams, "limit" is the first eight single exams, "all"
// returns everything.
const (
	ExamListSingle = "single"
	ExamListLimit  = "limit"
	ExamListAll    = "all"
)

const examCatalogLimit = 8

// ExamService manages the exam catalog.
type ExamService interface {
	Create(ctx context.Context, payload dto.ExamCreateRequest) (dto.ExamResponse, error)
	List(ctx context.Context, mode string) ([]dto.ExamResponse, error)
	GetByExamID(ctx context.Context, examID int64) (dto.ExamResponse, error)
}

type examService struct {
	exams     repository.ExamRepository
	allocator *IDAllocator
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewExamService constructs an ExamService instance.
func NewExamService(exams repository.ExamRepository, allocator *IDAllocator, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		exams:     exams,
		allocator: allocator,
		cache:     cache,
		cacheTTL:  ttl,
		validator: validate,
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) Create(ctx context.Context, payload dto.ExamCreateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamResponse{}, err
	}

	questions := make([]models.Question, 0, len(payload.Questions))
	for _, question := range payload.Questions {
		questions = append(questions, models.Question{
			Title:   question.Title,
			Options: question.Options,
			Answer:  question.Answer,
		})
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return dto.ExamResponse{}, fmt.Errorf("failed to encode questions: %w", err)
	}

	examID, err := s.allocator.Next(ctx, models.KindExam)
	if err != nil {
		return dto.ExamResponse{}, fmt.Errorf("failed to allocate exam id: %w", err)
	}

	exam := models.Exam{
		ExamID:          examID,
		Title:           payload.Title,
		Description:     payload.Description,
		ExamType:        payload.ExamType,
		DurationMinutes: payload.DurationMinutes,
		TotalMarks:      payload.TotalMarks,
		PassMark:        payload.PassMark,
		NegativeMarking: payload.NegativeMarking,
		NegativeMark:    payload.NegativeMark,
		Questions:       datatypes.JSON(encoded),
	}

	if err := s.exams.Create(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Int64("exam_id", exam.ExamID).Str("exam_type", exam.ExamType).Msg("exam created")

	return dto.NewExamResponse(exam)
}

func (s *examService) List(ctx context.Context, mode string) ([]dto.ExamResponse, error) {
	cacheKey := fmt.Sprintf("catalog:exams:%s", mode)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var responses []dto.ExamResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Str("mode", mode).Msg("exam catalog cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read exam catalog cache")
		}
	}

	filter := repository.ExamFilter{}
	singleType := models.ExamTypeSingle
	switch mode {
	case ExamListSingle:
		filter.ExamType = &singleType
	case ExamListLimit:
		filter.ExamType = &singleType
		filter.Limit = examCatalogLimit
	case ExamListAll:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownListMode, mode)
	}

	exams, err := s.exams.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses, err := dto.NewExamResponseSlice(exams)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store exam catalog cache")
			}
		}
	}

	return responses, nil
}

func (s *examService) GetByExamID(ctx context.Context, examID int64) (dto.ExamResponse, error) {
	exam, err := s.exams.GetByExamID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(exam)
}

func (s *examService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, mode := range []string{ExamListSingle, ExamListLimit, ExamListAll} {
		if err := s.cache.Del(ctx, fmt.Sprintf("catalog:exams:%s", mode)).Err(); err != nil {
			s.logger.Warn().Err(err).Str("mode", mode).Msg("failed to invalidate exam catalog cache")
		}
	}
}
