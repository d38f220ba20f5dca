package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/grading"
	"github.com/assessly-platform/assessly-api/internal/service"
	"github.com/assessly-platform/assessly-api/internal/utils"
)

// ExamSessionHandler manages the exam-taking flow: starting an attempt and
// submitting answers for grading.
type ExamSessionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewExamSessionHandler builds an exam session handler instance.
func NewExamSessionHandler(service service.SubmissionService, logger zerolog.Logger) *ExamSessionHandler {
	return &ExamSessionHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_session_handler").Logger(),
	}
}

// Register attaches the authenticated exam-taking routes.
func (h *ExamSessionHandler) Register(protected fiber.Router) {
	protected.Post("/exam/start", h.start)
	protected.Post("/exam/submit", h.submit)
}

func (h *ExamSessionHandler) start(c *fiber.Ctx) error {
	var payload dto.ExamStartRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Start(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam attempt ready", submission)
}

func (h *ExamSessionHandler) submit(c *fiber.Ctx) error {
	var payload dto.ExamSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", result)
}

func (h *ExamSessionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrSubmissionNotFinalized):
		return utils.SendError(c, fiber.StatusConflict, "submission not finalized")
	case errors.Is(err, grading.ErrInvalidScoringPolicy):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "exam has an invalid scoring policy")
	case errors.Is(err, grading.ErrAnswerCountMismatch):
		return utils.SendError(c, fiber.StatusBadRequest, "more answers than questions")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
