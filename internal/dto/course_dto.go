package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// CourseCreateRequest is the payload for creating a catalog course.
type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description string  `json:"description"`
	Instructor  string  `json:"instructor" validate:"omitempty,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	CoverURL    string  `json:"cover_url" validate:"omitempty,url"`
}

// CourseResponse is the catalog view of a course.
type CourseResponse struct {
	CourseID    int64     `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Price       float64   `json:"price"`
	CoverURL    string    `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCourseResponse maps a course model to its API representation.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		CourseID:    course.CourseID,
		Title:       course.Title,
		Description: course.Description,
		Instructor:  course.Instructor,
		Price:       course.Price,
		CoverURL:    course.CoverURL,
		CreatedAt:   course.CreatedAt,
	}
}

// NewCourseResponseSlice maps a list of courses.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
