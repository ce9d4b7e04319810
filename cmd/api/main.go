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

	"github.com/saqerservice/saqer-admin-api/internal/config"
	"github.com/saqerservice/saqer-admin-api/internal/database"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/middleware"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
	"github.com/saqerservice/saqer-admin-api/internal/router"
	"github.com/saqerservice/saqer-admin-api/internal/service"
	cloud "github.com/saqerservice/saqer-admin-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "saqer-admin-api").Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Booking{},
		&models.Reward{},
		&models.StaffUser{},
		&models.ActivityLog{},
		&models.Upload{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache and pub/sub")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, falling back to periodic refresh only")
		natsConn = nil
	} else {
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	bookingRepo := repository.NewBookingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	uploadService := service.NewUploadService(uploader, uploadRepo, cfg.UploadMaxSizeMB, logger)
	eventPublisher := service.NewBookingEventPublisher(redisClient, cfg.EventChannelBase, natsConn, logger)

	feed := service.NewBookingFeed(bookingRepo, redisClient, cfg.EventChannelBase, natsConn, cfg.DashboardRefresh, cfg.DashboardTimezone, logger)
	dashboardService := service.NewDashboardService(feed, redisClient, cfg.DashboardCacheTTL, logger)

	bookingService := service.NewBookingService(bookingRepo, validate, eventPublisher, activityService, logger)
	customerService := service.NewCustomerService(customerRepo, validate, activityService, logger)
	driverService := service.NewDriverService(driverRepo, uploadService, validate, activityService, logger)
	vehicleService := service.NewVehicleService(vehicleRepo, uploadService, validate, activityService, logger)
	rewardService := service.NewRewardService(rewardRepo, uploadService, validate, activityService, logger)
	authService := service.NewAuthService(staffRepo, service.AuthConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, validate, activityService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DefaultAdminEmail != "" && cfg.DefaultAdminPassword != "" {
		if err := authService.EnsureDefaultAdmin(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
			logger.Error().Err(err).Msg("failed to seed default admin account")
		}
	}

	feed.Start(ctx)

	loginLimiter := middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow)

	deps := router.Dependencies{
		HealthHandler:    handler.NewHealthHandler(cfg.AppName),
		AuthHandler:      handler.NewAuthHandler(authService, loginLimiter, logger),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, feed, logger),
		BookingHandler:   handler.NewBookingHandler(bookingService, logger),
		CustomerHandler:  handler.NewCustomerHandler(customerService, logger),
		DriverHandler:    handler.NewDriverHandler(driverService, logger),
		VehicleHandler:   handler.NewVehicleHandler(vehicleService, logger),
		RewardHandler:    handler.NewRewardHandler(rewardService, logger),
		UploadHandler:    handler.NewUploadHandler(uploadService, logger),
		ActivityHandler:  handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:    middleware.JWTProtected(cfg.JWTSecret),
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

	waitForShutdown(app, cancel)
}

func waitForShutdown(app *fiber.App, cancel context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	cancel()

	ctx, timeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeout()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
