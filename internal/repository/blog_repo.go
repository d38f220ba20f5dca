package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// BlogRepository defines data operations for published articles.
type BlogRepository interface {
	List(ctx context.Context, limit int) ([]models.Blog, error)
	GetByBlogID(ctx context.Context, blogID int64) (models.Blog, error)
	Create(ctx context.Context, blog *models.Blog) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository instantiates the repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) List(ctx context.Context, limit int) ([]models.Blog, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{}).Order("blog_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) GetByBlogID(ctx context.Context, blogID int64) (models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Where("blog_id = ?", blogID).First(&blog).Error; err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}
