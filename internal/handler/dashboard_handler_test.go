package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/service"
)

type stubFeed struct {
	snapshot  dto.DashboardSnapshot
	refreshed int
}

func (s *stubFeed) Start(context.Context)           {}
func (s *stubFeed) Refresh(context.Context)         { s.refreshed++ }
func (s *stubFeed) Snapshot() dto.DashboardSnapshot { return s.snapshot }
func (s *stubFeed) Subscribe() (<-chan dto.DashboardAggregate, func()) {
	ch := make(chan dto.DashboardAggregate, 1)
	return ch, func() {}
}

type stubDashboardService struct {
	aggregate dto.DashboardAggregate
	err       error
	calls     int
}

func (s *stubDashboardService) Summary(context.Context) (dto.DashboardAggregate, error) {
	s.calls++
	if s.err != nil {
		return dto.DashboardAggregate{}, s.err
	}
	return s.aggregate, nil
}

func (s *stubDashboardService) Snapshot() dto.DashboardSnapshot {
	return dto.DashboardSnapshot{Aggregate: s.aggregate}
}

func newDashboardApp(svc service.DashboardService, feed service.BookingFeed) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/admin/dashboard", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewDashboardHandler(svc, feed, zerolog.Nop()).Register(group)
	return app
}

func TestDashboardHandlerSummary(t *testing.T) {
	aggregate := dto.DashboardAggregate{
		TodaysCount:           3,
		TodaysRevenue:         120,
		TotalCompletedRevenue: 900,
		BadgeCount:            2,
		DailyRevenue:          make([]dto.DailyRevenuePoint, 7),
		GeneratedAt:           time.Now().UTC(),
	}
	svc := &stubDashboardService{aggregate: aggregate}
	app := newDashboardApp(svc, &stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    dto.DashboardAggregate `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, 3, payload.Data.TodaysCount)
	require.Equal(t, 900.0, payload.Data.TotalCompletedRevenue)
	require.Len(t, payload.Data.DailyRevenue, 7)
	require.Equal(t, 1, svc.calls)
}

func TestDashboardHandlerUnavailable(t *testing.T) {
	svc := &stubDashboardService{err: service.ErrDashboardUnavailable}
	app := newDashboardApp(svc, &stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboardHandlerManualRefresh(t *testing.T) {
	feed := &stubFeed{snapshot: dto.DashboardSnapshot{
		Aggregate: dto.DashboardAggregate{BadgeCount: 5, DailyRevenue: make([]dto.DailyRevenuePoint, 7)},
	}}
	app := newDashboardApp(&stubDashboardService{}, feed)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/dashboard/refresh", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Equal(t, 1, feed.refreshed)
}

func TestDashboardHandlerStreamRequiresUpgrade(t *testing.T) {
	app := newDashboardApp(&stubDashboardService{}, &stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard/ws", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
	resp.Body.Close()
}
