package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/middleware"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/service"
	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// ProgressHandler wires progress tracking HTTP routes. All routes operate on
// the authenticated user's own progress.
type ProgressHandler struct {
	progress   service.ProgressService
	completion service.CompletionService
	logger     zerolog.Logger
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(progress service.ProgressService, completion service.CompletionService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress:   progress,
		completion: completion,
		logger:     logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches progress endpoints to the router group.
func (h *ProgressHandler) Register(router fiber.Router) {
	staff := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)

	router.Get("", h.listMine)
	router.Get("/course/:courseId", staff, h.listForCourse)
	router.Get("/:courseId", h.get)
	router.Get("/:courseId/time", h.timeSpent)
	router.Post("/:courseId/materials/:index/viewed", h.markViewed)
	router.Post("/:courseId/session/start", h.startSession)
	router.Post("/:courseId/session/stop", h.stopSession)
}

func (h *ProgressHandler) listMine(c *fiber.Ctx) error {
	records, err := h.progress.ForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "progress retrieved", records)
}

// listForCourse is the instructor view: every student's progress on a course.
func (h *ProgressHandler) listForCourse(c *fiber.Ctx) error {
	records, err := h.progress.ForCourse(c.Context(), c.Params("courseId"))
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "progress retrieved", records)
}

func (h *ProgressHandler) get(c *fiber.Ctx) error {
	record, err := h.progress.Get(c.Context(), c.Params("courseId"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "progress record not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "progress retrieved", record)
}

func (h *ProgressHandler) timeSpent(c *fiber.Ctx) error {
	report := h.progress.TimeSpent(c.Context(), c.Params("courseId"), middleware.UserID(c))
	return utils.SendSuccess(c, "time retrieved", report)
}

// markViewed records the material view and re-checks completion, since a
// view can be the event that finishes the course.
func (h *ProgressHandler) markViewed(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material index")
	}

	courseID := c.Params("courseId")
	userID := middleware.UserID(c)

	h.progress.MarkMaterialViewed(c.Context(), courseID, userID, index)

	if _, err := h.completion.EvaluateCourse(c.Context(), courseID, userID); err != nil && !errors.Is(err, service.ErrCourseNotFound) {
		h.logger.Warn().Err(err).Str("course_id", courseID).Msg("completion evaluation failed")
	}

	return utils.SendSuccess(c, "material marked viewed", fiber.Map{"courseId": courseID, "materialIndex": index})
}

func (h *ProgressHandler) startSession(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	h.progress.StartTimeTracking(c.Context(), courseID, middleware.UserID(c))
	return utils.SendSuccess(c, "session started", fiber.Map{"courseId": courseID})
}

func (h *ProgressHandler) stopSession(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	h.progress.StopTimeTracking(c.Context(), courseID, middleware.UserID(c))
	return utils.SendSuccess(c, "session stopped", fiber.Map{"courseId": courseID})
}
