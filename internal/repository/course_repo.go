package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// CourseRepository defines data operations for the course catalog and
// enrollments.
type CourseRepository interface {
	List(ctx context.Context, limit int) ([]models.Course, error)
	GetByCourseID(ctx context.Context, courseID int64) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Enroll(ctx context.Context, enrollment *models.Enrollment) error
	ListEnrolled(ctx context.Context, email string) ([]models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates the repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, limit int) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{}).Order("course_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByCourseID(ctx context.Context, courseID int64) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).First(&course).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *courseRepository) ListEnrolled(ctx context.Context, email string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.course_id").
		Where("enrollments.email = ?", email).
		Order("enrollments.created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
