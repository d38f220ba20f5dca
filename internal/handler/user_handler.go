package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/service"
	"github.com/assessly-platform/assessly-api/internal/utils"
)

// UserHandler manages account endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler builds a user handler instance.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches routes: registration and role checks are public, the
// account list is admin-only.
func (h *UserHandler) Register(public fiber.Router, admin fiber.Router) {
	public.Post("/create-user", h.create)
	public.Get("/user/admin/:email", h.isAdmin)
	public.Get("/user/regular/:email", h.isRegular)
	admin.Get("/get/all-users", h.list)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Register(c.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			// Kept as a success response for compatibility with clients that
			// register on every sign-in.
			return utils.SendSuccess(c, "user already exists", nil)
		}
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) isAdmin(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	isAdmin, err := h.service.IsAdmin(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "role checked", dto.RoleCheckResponse{IsAdmin: &isAdmin})
}

func (h *UserHandler) isRegular(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	isUser, err := h.service.IsRegular(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "role checked", dto.RoleCheckResponse{IsUser: &isUser})
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
