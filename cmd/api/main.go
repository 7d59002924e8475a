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
	"github.com/rs/zerolog"

	"github.com/gradtrack/gradtrack-api/internal/config"
	"github.com/gradtrack/gradtrack-api/internal/database"
	"github.com/gradtrack/gradtrack-api/internal/handler"
	"github.com/gradtrack/gradtrack-api/internal/middleware"
	"github.com/gradtrack/gradtrack-api/internal/repository"
	"github.com/gradtrack/gradtrack-api/internal/router"
	"github.com/gradtrack/gradtrack-api/internal/service"
	"github.com/gradtrack/gradtrack-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	formRepo := repository.NewFormRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var mail mailer.Sender
	if cfg.SendgridAPIKey != "" {
		mail = mailer.NewSendgridSender(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromAddress, cfg.AppName, cfg.MailFallbackTo, logger)
	}

	roleService := service.NewRoleService(userRepo, studentRepo, staffRepo, logger)
	authService := service.NewAuthService(userRepo, validate, service.TokenSettings{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		Issuer:        cfg.AppName,
	}, logger)
	profileService := service.NewProfileService(userRepo, studentRepo, staffRepo, validate, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, "gradtrack", natsConn, mail, validate, logger)
	formService := service.NewFormService(formRepo, assignmentRepo, validate, notificationService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, logger)
	dashboardService := service.NewDashboardService(userRepo, studentRepo, assignmentRepo, formRepo, redisClient, cfg.DashboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	profileHandler := handler.NewProfileHandler(profileService, roleService, logger)
	formHandler := handler.NewFormHandler(formService, roleService, dashboardService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, roleService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, cfg.RequestTimeout)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, roleService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		ProfileHandler:      profileHandler,
		FormHandler:         formHandler,
		AssignmentHandler:   assignmentHandler,
		NotificationHandler: notificationHandler,
		DashboardHandler:    dashboardHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	runCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	notificationService.Start(runCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
