package integration_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
	"github.com/saqerservice/saqer-admin-api/internal/service"
)

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}

func TestDashboardStreamDeliversAggregates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:streamtest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Driver{}, &models.Booking{}))
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)

	now := time.Now().UTC()
	booking := models.Booking{
		Code:   "BK-STREAM01",
		Status: models.BookingStatusCompleted,
		Payload: datatypes.JSONMap{
			"amount":          float64(75),
			"status":          "completed",
			"bookingDateTime": float64(now.Unix()),
		},
	}
	require.NoError(t, db.Create(&booking).Error)

	repo := repository.NewBookingRepository(db)
	feed := service.NewBookingFeed(repo, nil, "saqer:admin", nil, time.Hour, "UTC", zerolog.Nop())
	dashboardService := service.NewDashboardService(feed, nil, time.Minute, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/admin/dashboard", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewDashboardHandler(dashboardService, feed, zerolog.Nop()).Register(group)

	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed.Refresh(ctx)

	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/api/v1/admin/dashboard/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}

	conn, resp, err := dialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// The first frame carries the current aggregate.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first dto.DashboardAggregate
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, 75.0, first.TotalCompletedRevenue)
	require.Len(t, first.DailyRevenue, 7)

	// A new booking followed by a refresh pushes an updated aggregate.
	second := models.Booking{
		Code:   "BK-STREAM02",
		Status: models.BookingStatusPending,
		Payload: datatypes.JSONMap{
			"amount":          float64(20),
			"status":          "pending",
			"bookingDateTime": float64(now.Unix()),
		},
	}
	require.NoError(t, db.Create(&second).Error)
	feed.Refresh(ctx)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var updated dto.DashboardAggregate
	require.NoError(t, conn.ReadJSON(&updated))
	require.Equal(t, 75.0, updated.TotalCompletedRevenue)
	require.Equal(t, 1, updated.BadgeCount)
	require.Len(t, updated.RecentBookings, 2)
}
