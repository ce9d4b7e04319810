package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/service"
	"github.com/saqerservice/saqer-admin-api/internal/utils"
)

const streamPingInterval = 30 * time.Second

// DashboardHandler exposes the admin dashboard summary and its live stream.
type DashboardHandler struct {
	service service.DashboardService
	feed    service.BookingFeed
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService, feed service.BookingFeed, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: dashboardService,
		feed:    feed,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes including the websocket upgrade.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Post("/refresh", h.refresh)

	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.stream))
}

func (h *DashboardHandler) summary(c *fiber.Ctx) error {
	aggregate, err := h.service.Summary(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrDashboardUnavailable) {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "dashboard data unavailable")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard summary")
	}

	return utils.SendSuccess(c, "dashboard summary", aggregate)
}

func (h *DashboardHandler) refresh(c *fiber.Ctx) error {
	h.feed.Refresh(c.Context())
	return utils.SendSuccess(c, "dashboard refresh triggered", h.feed.Snapshot().Aggregate)
}

// stream pushes the current aggregate immediately, then every recomputed
// aggregate until the client disconnects.
func (h *DashboardHandler) stream(conn *websocket.Conn) {
	updates, cancel := h.feed.Subscribe()
	defer cancel()
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(h.feed.Snapshot().Aggregate); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	h.logger.Info().Msg("dashboard stream connected")
	defer h.logger.Info().Msg("dashboard stream disconnected")

	for {
		select {
		case aggregate, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(aggregate); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
