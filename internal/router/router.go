package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saqerservice/saqer-admin-api/internal/config"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/middleware"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	HealthHandler    *handler.HealthHandler
	AuthHandler      *handler.AuthHandler
	DashboardHandler *handler.DashboardHandler
	BookingHandler   *handler.BookingHandler
	CustomerHandler  *handler.CustomerHandler
	DriverHandler    *handler.DriverHandler
	VehicleHandler   *handler.VehicleHandler
	RewardHandler    *handler.RewardHandler
	UploadHandler    *handler.UploadHandler
	ActivityHandler  *handler.ActivityHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(api)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := api.Group("/admin", jwtMiddleware)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(admin.Group("/auth"))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(admin.Group("/dashboard"))
	}

	if deps.BookingHandler != nil {
		deps.BookingHandler.Register(admin.Group("/bookings"))
	}

	if deps.CustomerHandler != nil {
		deps.CustomerHandler.Register(admin.Group("/customers"))
	}

	if deps.DriverHandler != nil {
		deps.DriverHandler.Register(admin.Group("/drivers"))
	}

	if deps.VehicleHandler != nil {
		deps.VehicleHandler.Register(admin.Group("/vehicles"))
	}

	if deps.RewardHandler != nil {
		deps.RewardHandler.Register(admin.Group("/rewards"))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(admin.Group("/uploads"))
	}

	if deps.ActivityHandler != nil {
		activity := admin.Group("/activity", middleware.RequireRole(models.StaffRoleAdmin))
		deps.ActivityHandler.Register(activity)
	}
}
