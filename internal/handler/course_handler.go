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

// CourseHandler manages course catalog endpoints.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler builds a course handler instance.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches routes: catalog reads are public, creation is admin-only
// and the enrolled view requires authentication.
func (h *CourseHandler) Register(public fiber.Router, protected fiber.Router, admin fiber.Router) {
	public.Get("/get/all-courses", h.list)
	public.Get("/get/course/:id", h.get)
	protected.Get("/my-courses/:email", h.listEnrolled)
	admin.Post("/create/course", h.create)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	courses, err := h.service.List(c.Context(), limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.GetByCourseID(c.Context(), courseID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) listEnrolled(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	courses, err := h.service.ListEnrolled(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "enrolled courses retrieved", courses)
}

func (h *CourseHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
