package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/TMgolfkid359/Magnolia-App/internal/config"
	"github.com/TMgolfkid359/Magnolia-App/internal/handler"
	"github.com/TMgolfkid359/Magnolia-App/internal/middleware"
	"github.com/TMgolfkid359/Magnolia-App/internal/repository"
	"github.com/TMgolfkid359/Magnolia-App/internal/router"
	"github.com/TMgolfkid359/Magnolia-App/internal/service"
	"github.com/TMgolfkid359/Magnolia-App/internal/store"
	"github.com/TMgolfkid359/Magnolia-App/pkg/fsp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	kv, err := connectStore(cfg)
	if err != nil {
		log.Fatalf("failed to connect to store: %v", err)
	}

	if err := repository.EnsureSeeded(context.Background(), kv, logger); err != nil {
		log.Fatalf("failed to seed store: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = store.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	var fspClient service.SchedulerClient
	if cfg.FSPAPIKey != "" && cfg.FSPOperatorID != "" {
		client, err := fsp.New(fsp.Config{
			BaseURL:    cfg.FSPBaseURL,
			APIKey:     cfg.FSPAPIKey,
			OperatorID: cfg.FSPOperatorID,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create scheduler client: %v", err)
		}
		fspClient = client
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(kv)
	courseRepo := repository.NewCourseRepository(kv)
	examRepo := repository.NewExamRepository(kv)
	attemptRepo := repository.NewAttemptRepository(kv)
	progressRepo := repository.NewProgressRepository(kv)
	videoRepo := repository.NewVideoRepository(kv)

	var publisher service.EventPublisher
	if natsConn != nil {
		publisher = natsConn
	}

	progressService := service.NewProgressService(progressRepo, logger)
	completionService := service.NewCompletionService(courseRepo, examRepo, attemptRepo, progressService, publisher, cfg.NATSSubject, logger)
	examService := service.NewExamService(examRepo, attemptRepo, progressService, completionService, validate, logger)
	authService := service.NewAuthService(userRepo, service.AuthConfig{
		PortalPassword: cfg.PortalPassword,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
	}, validate, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, completionService, validate, logger)
	videoService := service.NewVideoService(videoRepo, validate, logger)
	slidesService := service.NewSlidesService(validate, logger)

	deps := router.Dependencies{
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		UserHandler:     handler.NewUserHandler(userService, logger),
		CourseHandler:   handler.NewCourseHandler(courseService, logger),
		ExamHandler:     handler.NewExamHandler(examService, logger),
		ProgressHandler: handler.NewProgressHandler(progressService, completionService, logger),
		VideoHandler:    handler.NewVideoHandler(videoService, logger),
		SlidesHandler:   handler.NewSlidesHandler(slidesService, logger),
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
	}

	if fspClient != nil {
		scheduleService := service.NewScheduleService(userRepo, fspClient, redisClient, cfg.ScheduleCacheTTL, logger)
		deps.ScheduleHandler = handler.NewScheduleHandler(scheduleService, logger)
	} else {
		logger.Warn().Msg("scheduler credentials missing, schedule routes disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// connectStore picks the persistence backend from configuration: Postgres
// when a database URL is set, an on-disk SQLite file otherwise.
func connectStore(cfg config.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		return store.ConnectPostgres(cfg.DatabaseURL)
	}
	return store.ConnectSQLite("magnolia.db")
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
