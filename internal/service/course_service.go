package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// ErrCourseNotFound indicates the referenced course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// CourseService manages the course catalog and enrollment views.
type CourseService interface {
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	List(ctx context.Context, limit int) ([]dto.CourseResponse, error)
	GetByCourseID(ctx context.Context, courseID int64) (dto.CourseResponse, error)
	ListEnrolled(ctx context.Context, email string) ([]dto.CourseResponse, error)
}

type courseService struct {
	courses   repository.CourseRepository
	allocator *IDAllocator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courses repository.CourseRepository, allocator *IDAllocator, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:   courses,
		allocator: allocator,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	courseID, err := s.allocator.Next(ctx, models.KindCourse)
	if err != nil {
		return dto.CourseResponse{}, fmt.Errorf("failed to allocate course id: %w", err)
	}

	course := models.Course{
		CourseID:    courseID,
		Title:       payload.Title,
		Description: payload.Description,
		Instructor:  payload.Instructor,
		Price:       payload.Price,
		CoverURL:    payload.CoverURL,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Int64("course_id", course.CourseID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context, limit int) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) GetByCourseID(ctx context.Context, courseID int64) (dto.CourseResponse, error) {
	course, err := s.courses.GetByCourseID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) ListEnrolled(ctx context.Context, email string) ([]dto.CourseResponse, error) {
	courses, err := s.courses.ListEnrolled(ctx, email)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}
