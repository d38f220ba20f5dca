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
	"github.com/rs/zerolog"

	"github.com/assessly-platform/assessly-api/internal/config"
	"github.com/assessly-platform/assessly-api/internal/database"
	"github.com/assessly-platform/assessly-api/internal/handler"
	"github.com/assessly-platform/assessly-api/internal/middleware"
	"github.com/assessly-platform/assessly-api/internal/models"
	"github.com/assessly-platform/assessly-api/internal/repository"
	"github.com/assessly-platform/assessly-api/internal/router"
	"github.com/assessly-platform/assessly-api/internal/service"
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

	if err := db.AutoMigrate(
		&models.Counter{},
		&models.User{},
		&models.Exam{},
		&models.Course{},
		&models.Enrollment{},
		&models.Blog{},
		&models.Payment{},
		&models.Submission{},
		&models.Result{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	counterRepo := repository.NewCounterRepository(db)
	if err := counterRepo.Ensure(context.Background()); err != nil {
		log.Fatalf("failed to provision id counter: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	resultRepo := repository.NewResultRepository(db)

	allocator := service.NewIDAllocator(counterRepo)
	resultPublisher := service.NewNATSResultPublisher(natsConn, logger)

	userService := service.NewUserService(userRepo, validate, logger)
	examService := service.NewExamService(examRepo, allocator, redisClient, cfg.CatalogCacheTTL, validate, logger)
	courseService := service.NewCourseService(courseRepo, allocator, validate, logger)
	blogService := service.NewBlogService(blogRepo, allocator, validate, logger)
	paymentService := service.NewPaymentService(paymentRepo, courseRepo, allocator, validate, service.PaymentConfig{
		GatewayBaseURL: cfg.GatewayBaseURL,
		GatewayStoreID: cfg.GatewayStoreID,
		Currency:       cfg.Currency,
	}, logger)
	gradingService := service.NewGradingService(submissionRepo, examRepo, resultRepo, allocator, resultPublisher, redisClient, logger)
	submissionService := service.NewSubmissionService(submissionRepo, examRepo, gradingService, allocator, validate, logger)
	resultService := service.NewResultService(resultRepo, redisClient, cfg.CatalogCacheTTL, logger)
	certificateService := service.NewCertificateService(validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.AllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:        handler.NewUserHandler(userService, logger),
		ExamHandler:        handler.NewExamHandler(examService, logger),
		CourseHandler:      handler.NewCourseHandler(courseService, logger),
		BlogHandler:        handler.NewBlogHandler(blogService, logger),
		PaymentHandler:     handler.NewPaymentHandler(paymentService, logger),
		ExamSessionHandler: handler.NewExamSessionHandler(submissionService, logger),
		ResultHandler:      handler.NewResultHandler(resultService, certificateService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

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
