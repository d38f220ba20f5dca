package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/repository"
	"github.com/assessly-platform/assessly-api/pkg/reportgen"
)

// ErrResultNotFound indicates the referenced result does not exist.
var ErrResultNotFound = errors.New("result not found")

// resultsCacheKey names the per-email results cache entry. The grading
// service deletes it when a new result lands so the list never serves a
// stale view past a fresh grade.
func resultsCacheKey(email string) string {
	return fmt.Sprintf("results:email:%s", email)
}

// ResultService serves graded-result views and the admin export.
type ResultService interface {
	GetByResultID(ctx context.Context, resultID int64) (dto.ResultResponse, error)
	// ListByEmail returns a student's results, newest first, cached per
	// email.
	ListByEmail(ctx context.Context, email string) ([]dto.ResultResponse, error)
	// ExportAll renders every result into an XLSX workbook.
	ExportAll(ctx context.Context) ([]byte, error)
}

type resultService struct {
	results  repository.ResultRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewResultService constructs a ResultService instance.
func NewResultService(results repository.ResultRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ResultService {
	return &resultService{
		results:  results,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "result_service").Logger(),
	}
}

func (s *resultService) GetByResultID(ctx context.Context, resultID int64) (dto.ResultResponse, error) {
	result, err := s.results.GetByResultID(ctx, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrResultNotFound
		}
		return dto.ResultResponse{}, err
	}
	return dto.NewResultResponse(result), nil
}

func (s *resultService) ListByEmail(ctx context.Context, email string) ([]dto.ResultResponse, error) {
	cacheKey := resultsCacheKey(email)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var responses []dto.ResultResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Str("email", email).Msg("results cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read results cache")
		}
	}

	results, err := s.results.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	responses := dto.NewResultResponseSlice(results)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store results cache")
			}
		}
	}

	return responses, nil
}

func (s *resultService) ExportAll(ctx context.Context) ([]byte, error) {
	results, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]reportgen.ResultRow, 0, len(results))
	for _, result := range results {
		rows = append(rows, reportgen.ResultRow{
			ResultID:          result.ResultID,
			ExamID:            result.ExamID,
			Email:             result.Email,
			TotalMarks:        result.TotalMarks,
			TotalRight:        result.TotalRight,
			TotalWrong:        result.TotalWrong,
			TotalSkip:         result.TotalSkip,
			TotalNegativeMark: result.TotalNegativeMark,
			ObtainMarks:       result.ObtainMarks,
			Status:            result.Status,
			CreatedAt:         result.CreatedAt,
		})
	}

	workbook, err := reportgen.ResultsWorkbook(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build results workbook: %w", err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("results exported")
	return workbook, nil
}
