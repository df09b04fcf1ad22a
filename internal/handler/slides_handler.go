package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/service"
	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// SlidesHandler wires presentation extraction HTTP routes.
type SlidesHandler struct {
	service service.SlidesService
	logger  zerolog.Logger
}

// NewSlidesHandler constructs the handler.
func NewSlidesHandler(service service.SlidesService, logger zerolog.Logger) *SlidesHandler {
	return &SlidesHandler{
		service: service,
		logger:  logger.With().Str("component", "slides_handler").Logger(),
	}
}

// Register attaches slide extraction endpoints to the router group.
func (h *SlidesHandler) Register(router fiber.Router) {
	router.Post("/extract", h.extract)
}

func (h *SlidesHandler) extract(c *fiber.Ctx) error {
	var payload dto.ExtractSlidesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	slides, err := h.service.Extract(c.Context(), payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		}
		h.logger.Warn().Err(err).Msg("slide extraction failed")
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return utils.SendSuccess(c, "slides extracted", slides)
}
