package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/dto"
	"github.com/TMgolfkid359/Magnolia-App/internal/middleware"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/service"
	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// VideoHandler wires video library HTTP routes.
type VideoHandler struct {
	service service.VideoService
	logger  zerolog.Logger
}

// NewVideoHandler constructs the handler.
func NewVideoHandler(service service.VideoService, logger zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		service: service,
		logger:  logger.With().Str("component", "video_handler").Logger(),
	}
}

// Register attaches video endpoints to the router group.
func (h *VideoHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)

	staff := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)
	router.Post("", staff, h.create)
	router.Patch("/:id", staff, h.update)
	router.Delete("/:id", staff, h.delete)
}

func (h *VideoHandler) list(c *fiber.Ctx) error {
	videos, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "videos retrieved", videos)
}

func (h *VideoHandler) get(c *fiber.Ctx) error {
	video, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "video retrieved", video)
}

func (h *VideoHandler) create(c *fiber.Ctx) error {
	var payload dto.VideoCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	video, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "video created", video)
}

func (h *VideoHandler) update(c *fiber.Ctx) error {
	var payload dto.VideoUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	video, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "video updated", video)
}

func (h *VideoHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "video deleted", fiber.Map{"id": c.Params("id")})
}

func (h *VideoHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "video not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
