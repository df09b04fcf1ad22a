package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/pkg/pptx"
)

// SlidesService extracts slide text and images from uploaded presentations.
type SlidesService interface {
	Extract(ctx context.Context, payload dto.ExtractSlidesRequest) (dto.ExtractSlidesResponse, error)
}

type slidesService struct {
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSlidesService builds a new slides service.
func NewSlidesService(validate *validator.Validate, logger zerolog.Logger) SlidesService {
	return &slidesService{
		validator: validate,
		logger:    logger.With().Str("component", "slides_service").Logger(),
	}
}

func (s *slidesService) Extract(_ context.Context, payload dto.ExtractSlidesRequest) (dto.ExtractSlidesResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExtractSlidesResponse{}, err
	}

	slides, err := pptx.Extract(payload.FileData)
	if err != nil {
		return dto.ExtractSlidesResponse{}, fmt.Errorf("failed to extract slides: %w", err)
	}

	s.logger.Info().Int("slides", len(slides)).Msg("presentation extracted")

	return dto.NewExtractSlidesResponse(slides), nil
}
