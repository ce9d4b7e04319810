package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

// HealthHandler exposes liveness endpoints.
type HealthHandler struct {
	appName   string
	startedAt time.Time
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{
		appName:   appName,
		startedAt: time.Now(),
	}
}

// Register wires health routes.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "service healthy", fiber.Map{
		"app":    h.appName,
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
