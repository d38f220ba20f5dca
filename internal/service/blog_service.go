package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
)

// ErrBlogNotFound indicates the referenced article does not exist.
var ErrBlogNotFound = errors.New("blog not found")

const blogListLimit = 8

// BlogService manages published articles.
type BlogService interface {
	Create(ctx context.Context, payload dto.BlogCreateRequest) (dto.BlogResponse, error)
	// List returns all articles when limited is false, or the newest eight
	// when true.
	List(ctx context.Context, limited bool) ([]dto.BlogResponse, error)
	GetByBlogID(ctx context.Context, blogID int64) (dto.BlogResponse, error)
}

type blogService struct {
	blogs     repository.BlogRepository
	allocator *IDAllocator
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewBlogService constructs a BlogService instance. Article bodies pass
// through the UGC sanitizer before storage.
func NewBlogService(blogs repository.BlogRepository, allocator *IDAllocator, validate *validator.Validate, logger zerolog.Logger) BlogService {
	return &blogService{
		blogs:     blogs,
		allocator: allocator,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "blog_service").Logger(),
	}
}

func (s *blogService) Create(ctx context.Context, payload dto.BlogCreateRequest) (dto.BlogResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BlogResponse{}, err
	}

	blogID, err := s.allocator.Next(ctx, models.KindBlog)
	if err != nil {
		return dto.BlogResponse{}, fmt.Errorf("failed to allocate blog id: %w", err)
	}

	blog := models.Blog{
		BlogID:      blogID,
		Title:       payload.Title,
		Body:        s.sanitizer.Sanitize(payload.Body),
		AuthorName:  payload.AuthorName,
		AuthorEmail: payload.AuthorEmail,
		CoverURL:    payload.CoverURL,
	}

	if err := s.blogs.Create(ctx, &blog); err != nil {
		return dto.BlogResponse{}, err
	}

	s.logger.Info().Int64("blog_id", blog.BlogID).Msg("blog created")

	return dto.NewBlogResponse(blog), nil
}

func (s *blogService) List(ctx context.Context, limited bool) ([]dto.BlogResponse, error) {
	limit := 0
	if limited {
		limit = blogListLimit
	}

	blogs, err := s.blogs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewBlogResponseSlice(blogs), nil
}

func (s *blogService) GetByBlogID(ctx context.Context, blogID int64) (dto.BlogResponse, error) {
	blog, err := s.blogs.GetByBlogID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BlogResponse{}, ErrBlogNotFound
		}
		return dto.BlogResponse{}, err
	}
	return dto.NewBlogResponse(blog), nil
}
