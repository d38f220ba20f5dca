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

// PaymentHandler manages checkout and gateway callback endpoints.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler builds a payment handler instance.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("component", "payment_handler").Logger(),
	}
}

// Register attaches routes. Gateway callbacks land on the public surface
// because the provider posts to them without our JWT.
func (h *PaymentHandler) Register(public fiber.Router, protected fiber.Router) {
	protected.Post("/payment/checkout", h.checkout)
	protected.Get("/my-payments/:email", h.listByEmail)
	public.Post("/payment/success/:ref", h.confirmSuccess)
	public.Post("/payment/fail/:ref", h.confirmFailure)
}

func (h *PaymentHandler) checkout(c *fiber.Ctx) error {
	var payload dto.CheckoutRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	checkout, err := h.service.Checkout(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "checkout created", checkout)
}

func (h *PaymentHandler) confirmSuccess(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Params("ref"))
	if ref == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "transaction ref is required")
	}

	payment, err := h.service.ConfirmSuccess(c.Context(), ref)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payment confirmed", payment)
}

func (h *PaymentHandler) confirmFailure(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Params("ref"))
	if ref == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "transaction ref is required")
	}

	payment, err := h.service.ConfirmFailure(c.Context(), ref)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payment marked failed", payment)
}

func (h *PaymentHandler) listByEmail(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payments, err := h.service.ListByEmail(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payments retrieved", payments)
}

func (h *PaymentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrPaymentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "payment not found")
	case errors.Is(err, service.ErrPaymentAlreadySettled):
		return utils.SendError(c, fiber.StatusConflict, "payment already settled")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
