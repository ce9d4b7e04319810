package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

var aggregateNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func payloadBooking(id uint, payload map[string]interface{}) models.Booking {
	return models.Booking{
		ID:      id,
		Code:    "BK-test",
		Payload: datatypes.JSONMap(payload),
	}
}

func TestBuildAggregateCompletedBookingToday(t *testing.T) {
	bookedAt := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(100),
			"status":          "Completed",
			"bookingDateTime": float64(bookedAt.Unix()),
		}),
	}

	aggregate := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Equal(t, 1, aggregate.TodaysCount)
	require.Equal(t, 100.0, aggregate.TodaysRevenue)
	require.Equal(t, 100.0, aggregate.TotalCompletedRevenue)
	require.Equal(t, 0, aggregate.BadgeCount)
	require.Len(t, aggregate.DailyRevenue, 7)
	require.Equal(t, "2025-03-15", aggregate.DailyRevenue[6].Date)
	require.Equal(t, 100.0, aggregate.DailyRevenue[6].Revenue)
}

func TestBuildAggregateBookingOutsideWindow(t *testing.T) {
	eightDaysAgo := aggregateNow.AddDate(0, 0, -8)
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(50),
			"status":          "Active",
			"bookingDateTime": float64(eightDaysAgo.Unix()),
		}),
	}

	aggregate := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Equal(t, 0, aggregate.TodaysCount)
	require.Equal(t, 0.0, aggregate.TodaysRevenue)
	require.Equal(t, 0.0, aggregate.TotalCompletedRevenue)
	require.Equal(t, 1, aggregate.BadgeCount)
	for _, point := range aggregate.DailyRevenue {
		require.Equal(t, 0.0, point.Revenue)
	}
}

func TestBuildAggregateCompletedWithoutAmountOrDate(t *testing.T) {
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{"status": "completed"}),
	}

	aggregate := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Equal(t, 0.0, aggregate.TotalCompletedRevenue)
	require.Equal(t, 0, aggregate.TodaysCount)
	require.Equal(t, 0, aggregate.BadgeCount)
	for _, point := range aggregate.DailyRevenue {
		require.Equal(t, 0.0, point.Revenue)
	}
	// The booking still appears in the listing, sorted last.
	require.Len(t, aggregate.RecentBookings, 1)
	require.Equal(t, int64(0), aggregate.RecentBookings[0].SortKey)
}

func TestBuildAggregateStringAmountAndUppercaseStatus(t *testing.T) {
	today := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          "30",
			"status":          "COMPLETED",
			"bookingDateTime": today.Format(time.RFC3339),
		}),
		payloadBooking(2, map[string]interface{}{
			"amount":          float64(20),
			"status":          "pending",
			"bookingDateTime": float64(yesterday.Unix()),
		}),
	}

	aggregate := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Equal(t, 1, aggregate.TodaysCount)
	require.Equal(t, 30.0, aggregate.TodaysRevenue)
	require.Equal(t, 30.0, aggregate.TotalCompletedRevenue)
	require.Equal(t, 1, aggregate.BadgeCount)
	require.Equal(t, 30.0, aggregate.DailyRevenue[6].Revenue)
	require.Equal(t, 20.0, aggregate.DailyRevenue[5].Revenue)
}

func TestBuildAggregateOrderIndependence(t *testing.T) {
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(10),
			"status":          "completed",
			"bookingDateTime": float64(aggregateNow.Add(-2 * time.Hour).Unix()),
		}),
		payloadBooking(2, map[string]interface{}{
			"amount":          float64(25),
			"status":          "active",
			"bookingDateTime": float64(aggregateNow.AddDate(0, 0, -3).Unix()),
		}),
		payloadBooking(3, map[string]interface{}{
			"amount": float64(5),
			"status": "cancelled",
		}),
	}

	reversed := []models.Booking{bookings[2], bookings[1], bookings[0]}

	first := buildAggregate(bookings, aggregateNow, time.UTC)
	second := buildAggregate(reversed, aggregateNow, time.UTC)

	require.Equal(t, first.TodaysCount, second.TodaysCount)
	require.Equal(t, first.TodaysRevenue, second.TodaysRevenue)
	require.Equal(t, first.TotalCompletedRevenue, second.TotalCompletedRevenue)
	require.Equal(t, first.BadgeCount, second.BadgeCount)
	require.Equal(t, first.DailyRevenue, second.DailyRevenue)
}

func TestBuildAggregateDeterministic(t *testing.T) {
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(42),
			"status":          "completed",
			"bookingDateTime": float64(aggregateNow.Add(-1 * time.Hour).Unix()),
		}),
		payloadBooking(2, map[string]interface{}{
			"totalAmount": float64(13),
			"status":      "dispatched",
			"createdAt":   float64(aggregateNow.AddDate(0, 0, -6).Unix()),
		}),
	}

	first := buildAggregate(bookings, aggregateNow, time.UTC)
	second := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Equal(t, first, second)
}

func TestBuildAggregateEmptyInput(t *testing.T) {
	aggregate := buildAggregate(nil, aggregateNow, time.UTC)

	require.Equal(t, 0, aggregate.TodaysCount)
	require.Equal(t, 0.0, aggregate.TodaysRevenue)
	require.Equal(t, 0.0, aggregate.TotalCompletedRevenue)
	require.Equal(t, 0, aggregate.BadgeCount)
	require.Len(t, aggregate.DailyRevenue, 7)
	require.Empty(t, aggregate.RecentBookings)

	require.Equal(t, "2025-03-09", aggregate.DailyRevenue[0].Date)
	require.Equal(t, "2025-03-15", aggregate.DailyRevenue[6].Date)
	for _, point := range aggregate.DailyRevenue {
		require.Equal(t, 0.0, point.Revenue)
	}
}

func TestBuildAggregateRecentBookingsSortedByRecency(t *testing.T) {
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"status":          "pending",
			"bookingDateTime": float64(aggregateNow.Add(-48 * time.Hour).Unix()),
		}),
		payloadBooking(2, map[string]interface{}{
			"status": "pending",
		}),
		payloadBooking(3, map[string]interface{}{
			"status":          "pending",
			"bookingDateTime": float64(aggregateNow.Add(-1 * time.Hour).Unix()),
		}),
	}

	aggregate := buildAggregate(bookings, aggregateNow, time.UTC)

	require.Len(t, aggregate.RecentBookings, 3)
	require.Equal(t, uint(3), aggregate.RecentBookings[0].Booking.ID)
	require.Equal(t, uint(1), aggregate.RecentBookings[1].Booking.ID)
	// Bookings without a resolvable timestamp sink to the bottom.
	require.Equal(t, uint(2), aggregate.RecentBookings[2].Booking.ID)
}

func TestBuildAggregateDateOnlyStringsStayOnTheirDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// A date-only value names a calendar day, not an instant. In a
	// negative-offset zone it must not slide back to the previous day.
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, loc)
	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(80),
			"status":          "completed",
			"bookingDateTime": "2025-03-15",
		}),
	}

	aggregate := buildAggregate(bookings, now, loc)

	require.Equal(t, 1, aggregate.TodaysCount)
	require.Equal(t, 80.0, aggregate.TodaysRevenue)
	require.Equal(t, "2025-03-15", aggregate.DailyRevenue[6].Date)
	require.Equal(t, 80.0, aggregate.DailyRevenue[6].Revenue)
}

func TestBuildAggregateDayBucketsFollowLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	// 22:00 UTC on March 14 is already March 15 in Riyadh (UTC+3).
	lateEvening := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		payloadBooking(1, map[string]interface{}{
			"amount":          float64(60),
			"status":          "completed",
			"bookingDateTime": float64(lateEvening.Unix()),
		}),
	}

	utcAggregate := buildAggregate(bookings, now, time.UTC)
	riyadhAggregate := buildAggregate(bookings, now, loc)

	require.Equal(t, 0, utcAggregate.TodaysCount)
	require.Equal(t, 1, riyadhAggregate.TodaysCount)
	require.Equal(t, 60.0, riyadhAggregate.TodaysRevenue)
}
