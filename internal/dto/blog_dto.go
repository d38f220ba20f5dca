package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// BlogCreateRequest is the payload for publishing an article. Body may carry
// HTML; it is sanitized before storage.
type BlogCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Body        string `json:"body" validate:"required,min=10"`
	AuthorName  string `json:"author_name" validate:"omitempty,max=255"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
}

// BlogResponse is the public view of an article.
type BlogResponse struct {
	BlogID      int64     `json:"blog_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	CoverURL    string    `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBlogResponse maps a blog model to its API representation.
func NewBlogResponse(blog models.Blog) BlogResponse {
	return BlogResponse{
		BlogID:      blog.BlogID,
		Title:       blog.Title,
		Body:        blog.Body,
		AuthorName:  blog.AuthorName,
		AuthorEmail: blog.AuthorEmail,
		CoverURL:    blog.CoverURL,
		CreatedAt:   blog.CreatedAt,
	}
}

// NewBlogResponseSlice maps a list of blogs.
func NewBlogResponseSlice(blogs []models.Blog) []BlogResponse {
	responses := make([]BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		responses = append(responses, NewBlogResponse(blog))
	}
	return responses
}
