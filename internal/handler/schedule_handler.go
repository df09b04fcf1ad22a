package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/middleware"
	"github.com/TMgolfkid359/Magnolia-App/internal/service"
	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// ScheduleHandler wires flight schedule HTTP routes.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register attaches schedule endpoints to the router group.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.mySchedule)
	router.Post("/match", h.matchStudent)
}

// mySchedule always answers 200 with the schedule payload; a scheduler
// failure is reported through the payload's error field with empty
// partitions, and clients branch on that field.
func (h *ScheduleHandler) mySchedule(c *fiber.Ctx) error {
	schedule, err := h.service.ForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "schedule retrieved", schedule)
}

func (h *ScheduleHandler) matchStudent(c *fiber.Ctx) error {
	match, err := h.service.MatchStudent(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("scheduler match failed")
		return utils.SendError(c, fiber.StatusBadGateway, "scheduler lookup failed")
	}

	return utils.SendSuccess(c, "match completed", match)
}
