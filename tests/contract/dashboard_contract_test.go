package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
)

type stubDashboardService struct {
	aggregate dto.DashboardAggregate
}

func (s stubDashboardService) Summary(context.Context) (dto.DashboardAggregate, error) {
	return s.aggregate, nil
}

func (s stubDashboardService) Snapshot() dto.DashboardSnapshot {
	return dto.DashboardSnapshot{Aggregate: s.aggregate}
}

type stubFeed struct {
	aggregate dto.DashboardAggregate
}

func (s stubFeed) Start(context.Context)           {}
func (s stubFeed) Refresh(context.Context)         {}
func (s stubFeed) Snapshot() dto.DashboardSnapshot { return dto.DashboardSnapshot{Aggregate: s.aggregate} }
func (s stubFeed) Subscribe() (<-chan dto.DashboardAggregate, func()) {
	ch := make(chan dto.DashboardAggregate, 1)
	return ch, func() {}
}

func sampleAggregate() dto.DashboardAggregate {
	now := time.Now().UTC()
	daily := make([]dto.DailyRevenuePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		daily = append(daily, dto.DailyRevenuePoint{
			Date:    now.AddDate(0, 0, -i).Format("2006-01-02"),
			Revenue: float64(i) * 15,
		})
	}

	return dto.DashboardAggregate{
		TodaysCount:           2,
		TodaysRevenue:         120,
		TotalCompletedRevenue: 980,
		BadgeCount:            4,
		DailyRevenue:          daily,
		RecentBookings: []dto.RecentBooking{
			{
				Booking: dto.BookingResponse{
					ID:            31,
					Code:          "BK-7F3A2C91DD",
					PickupAddress: "Airport Terminal 1",
					DropAddress:   "Downtown Plaza",
					Amount:        60,
					Status:        "completed",
					CreatedAt:     now,
					UpdatedAt:     now,
				},
				SortKey: now.UnixMilli(),
			},
		},
		GeneratedAt: now,
	}
}

func TestDashboardSummaryContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "dashboard_summary.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	aggregate := sampleAggregate()
	dashboardHandler := handler.NewDashboardHandler(
		stubDashboardService{aggregate: aggregate},
		stubFeed{aggregate: aggregate},
		zerolog.Nop(),
	)

	app := fiber.New()
	group := app.Group("/api/v1/admin/dashboard", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "admin")
		return c.Next()
	})
	dashboardHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
