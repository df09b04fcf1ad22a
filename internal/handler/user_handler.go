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

// UserHandler wires user administration HTTP routes.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/link-fsp", h.linkFSP)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	var payload dto.UserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user deleted", fiber.Map{"id": c.Params("id")})
}

func (h *UserHandler) approve(c *fiber.Ctx) error {
	user, err := h.service.ApproveEnrollment(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "enrollment approved", user)
}

func (h *UserHandler) linkFSP(c *fiber.Ctx) error {
	var payload dto.LinkFSPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.LinkFSP(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "scheduler ids linked", user)
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already registered")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
