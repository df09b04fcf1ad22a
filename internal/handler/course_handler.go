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

// CourseHandler wires course HTTP routes.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches course endpoints to the router group. Mutations are
// restricted to instructors and admins.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)

	staff := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)
	router.Post("", staff, h.create)
	router.Patch("/:id", staff, h.update)
	router.Delete("/:id", staff, h.delete)
}

// list re-evaluates the caller's completion state before listing, so a
// freshly earned completion shows up without an extra write event.
func (h *CourseHandler) list(c *fiber.Ctx) error {
	courses, err := h.service.ListForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	course, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
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

func (h *CourseHandler) update(c *fiber.Ctx) error {
	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course deleted", fiber.Map{"id": c.Params("id")})
}

func (h *CourseHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrInvalidMaterial):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
