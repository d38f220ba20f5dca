package dto

import (
	"time"

	"github.com/assessly-platform/assessly-api/internal/models"
)

// UserCreateRequest is the payload for account registration.
type UserCreateRequest struct {
	Name     string `json:"user_name" validate:"required,min=2,max=255"`
	Email    string `json:"user_email" validate:"required,email"`
	Role     string `json:"user_role" validate:"omitempty,oneof=admin user"`
	PhotoURL string `json:"user_photo" validate:"omitempty,url"`
}

// UserResponse is returned to API clients when viewing accounts.
type UserResponse struct {
	Name      string    `json:"user_name"`
	Email     string    `json:"user_email"`
	Role      string    `json:"user_role"`
	PhotoURL  string    `json:"user_photo"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleCheckResponse answers the admin/regular role checks.
type RoleCheckResponse struct {
	IsAdmin *bool `json:"is_admin,omitempty"`
	IsUser  *bool `json:"is_user,omitempty"`
}

// NewUserResponse maps a user model to its API representation.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		PhotoURL:  user.PhotoURL,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponseSlice maps a list of users.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
