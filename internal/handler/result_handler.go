package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/internal/service"
	"github.com/assessly-platform/assessly-api/internal/utils"
)

// ResultHandler serves graded results, the admin export and certificate
// generation.
type ResultHandler struct {
	results      service.ResultService
	certificates service.CertificateService
	logger       zerolog.Logger
}

// NewResultHandler builds a result handler instance.
func NewResultHandler(results service.ResultService, certificates service.CertificateService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		results:      results,
		certificates: certificates,
		logger:       logger.With().Str("component", "result_handler").Logger(),
	}
}

// Register attaches routes: result views require authentication, the export
// is admin-only and certificate generation is public (the original surface
// exposed it without auth).
func (h *ResultHandler) Register(public fiber.Router, protected fiber.Router, admin fiber.Router) {
	protected.Get("/get/result/:id", h.get)
	protected.Get("/my-results/:email", h.listByEmail)
	admin.Get("/admin/results/export", h.export)
	public.Post("/generate-certificate", h.generateCertificate)
}

func (h *ResultHandler) get(c *fiber.Ctx) error {
	resultID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.results.GetByResultID(c.Context(), resultID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "result retrieved", result)
}

func (h *ResultHandler) listByEmail(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.results.ListByEmail(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *ResultHandler) export(c *fiber.Ctx) error {
	workbook, err := h.results.ExportAll(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=results.xlsx`)
	return c.Send(workbook)
}

func (h *ResultHandler) generateCertificate(c *fiber.Ctx) error {
	var payload dto.CertificateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	document, err := h.certificates.Generate(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=certificate-%s.pdf", payload.Name))
	return c.Send(document)
}

func (h *ResultHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrResultNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "result not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
