package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TMgolfkid359/Magnolia-App/internal/config"
	"github.com/TMgolfkid359/Magnolia-App/internal/handler"
	"github.com/TMgolfkid359/Magnolia-App/internal/middleware"
	"github.com/TMgolfkid359/Magnolia-App/internal/models"
	"github.com/TMgolfkid359/Magnolia-App/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CourseHandler   *handler.CourseHandler
	ExamHandler     *handler.ExamHandler
	ProgressHandler *handler.ProgressHandler
	ScheduleHandler *handler.ScheduleHandler
	VideoHandler    *handler.VideoHandler
	SlidesHandler   *handler.SlidesHandler
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.UserHandler != nil {
		admin := middleware.RequireRole(models.RoleAdmin)
		deps.UserHandler.Register(api.Group("/users", jwtMiddleware, admin))
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses", jwtMiddleware))
	}

	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(api.Group("/exams", jwtMiddleware))
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(api.Group("/progress", jwtMiddleware))
	}

	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(api.Group("/schedule", jwtMiddleware))
	}

	if deps.VideoHandler != nil {
		deps.VideoHandler.Register(api.Group("/videos", jwtMiddleware))
	}

	if deps.SlidesHandler != nil {
		staff := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)
		deps.SlidesHandler.Register(api.Group("/slides", jwtMiddleware, staff))
	}
}
