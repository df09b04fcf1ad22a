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

// ExamHandler wires exam and attempt HTTP routes.
type ExamHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewExamHandler constructs the handler.
func NewExamHandler(service service.ExamService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register attaches exam endpoints to the router group. The answer key is
// only included for instructors and admins; exam mutations are staff-only.
func (h *ExamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)

	staff := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)
	router.Post("", staff, h.create)
	router.Patch("/:id", staff, h.update)
	router.Delete("/:id", staff, h.delete)

	router.Post("/:id/attempts", h.startAttempt)
	router.Get("/attempts/history", h.listAttempts)
	router.Get("/attempts/:attemptId", h.getAttempt)
	router.Post("/attempts/:attemptId/submit", h.submitAttempt)
}

func isStaff(c *fiber.Ctx) bool {
	role := middleware.UserRole(c)
	return role == models.RoleInstructor || role == models.RoleAdmin
}

func (h *ExamHandler) list(c *fiber.Ctx) error {
	includeAnswers := isStaff(c)

	if courseID := c.Query("courseId"); courseID != "" {
		exams, err := h.service.ListByCourse(c.Context(), courseID, includeAnswers)
		if err != nil {
			return h.handleError(c, err)
		}
		return utils.SendSuccess(c, "exams retrieved", exams)
	}

	exams, err := h.service.List(c.Context(), includeAnswers)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exams retrieved", exams)
}

func (h *ExamHandler) get(c *fiber.Ctx) error {
	exam, err := h.service.Get(c.Context(), c.Params("id"), isStaff(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam retrieved", exam)
}

func (h *ExamHandler) create(c *fiber.Ctx) error {
	var payload dto.ExamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	exam, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam created", exam)
}

func (h *ExamHandler) update(c *fiber.Ctx) error {
	var payload dto.ExamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	exam, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam updated", exam)
}

func (h *ExamHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "exam deleted", fiber.Map{"id": c.Params("id")})
}

func (h *ExamHandler) startAttempt(c *fiber.Ctx) error {
	attempt, err := h.service.StartAttempt(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attempt started", attempt)
}

func (h *ExamHandler) submitAttempt(c *fiber.Ctx) error {
	var payload dto.SubmitAttemptRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.service.SubmitAttempt(c.Context(), c.Params("attemptId"), middleware.UserID(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt submitted", attempt)
}

func (h *ExamHandler) getAttempt(c *fiber.Ctx) error {
	attempt, err := h.service.GetAttempt(c.Context(), c.Params("attemptId"), middleware.UserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt retrieved", attempt)
}

func (h *ExamHandler) listAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.ListAttempts(c.Context(), middleware.UserID(c), c.Query("examId"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempts retrieved", attempts)
}

func (h *ExamHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrAttemptNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attempt not found")
	case errors.Is(err, service.ErrAttemptLimitReached):
		return utils.SendError(c, fiber.StatusForbidden, "attempt limit reached")
	case errors.Is(err, service.ErrAttemptFinalized):
		return utils.SendError(c, fiber.StatusConflict, "attempt already finalized")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
