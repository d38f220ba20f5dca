package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/dto"
	"github.com/assessly-platform/assessly-api/pkg/pdfgen"
)

// CertificateService renders completion certificates.
type CertificateService interface {
	Generate(ctx context.Context, payload dto.CertificateRequest) ([]byte, error)
}

type certificateService struct {
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCertificateService constructs a CertificateService instance.
func NewCertificateService(validate *validator.Validate, logger zerolog.Logger) CertificateService {
	return &certificateService{
		validator: validate,
		logger:    logger.With().Str("component", "certificate_service").Logger(),
	}
}

func (s *certificateService) Generate(_ context.Context, payload dto.CertificateRequest) ([]byte, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	document, err := pdfgen.Certificate(pdfgen.CertificateData{
		Name:   payload.Name,
		Course: payload.Course,
		Date:   payload.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}

	s.logger.Info().Str("course", payload.Course).Msg("certificate generated")
	return document, nil
}
