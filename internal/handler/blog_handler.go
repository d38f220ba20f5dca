package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/service"
	"github.com/assessly-platform/assessly-api/internal/utils"
)

// BlogHandler manages article endpoints.
type BlogHandler struct {
	service service.BlogService
	logger  zerolog.Logger
}

// NewBlogHandler builds a blog handler instance.
func NewBlogHandler(service service.BlogService, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger.With().Str("component", "blog_handler").Logger(),
	}
}

// Register attaches routes: reads are public, publishing is admin-only.
func (h *BlogHandler) Register(public fiber.Router, admin fiber.Router) {
	public.Get("/get/blogs", h.list)
	public.Get("/get/blog/:id", h.get)
	admin.Post("/create/blog", h.create)
}

func (h *BlogHandler) create(c *fiber.Ctx) error {
	var payload dto.BlogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	blog, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "blog created", blog)
}

func (h *BlogHandler) list(c *fiber.Ctx) error {
	// The public surface accepts limit=all or limit=8; anything else falls
	// back to the full list.
	limited := strings.TrimSpace(c.Query("limit")) == "8"

	blogs, err := h.service.List(c.Context(), limited)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "blogs retrieved", blogs)
}

func (h *BlogHandler) get(c *fiber.Ctx) error {
	blogID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	blog, err := h.service.GetByBlogID(c.Context(), blogID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "blog retrieved", blog)
}

func (h *BlogHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "blog not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
