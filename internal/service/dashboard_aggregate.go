package service

import (
	"sort"
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
)

const (
	revenueWindowDays = 7
	dateKeyLayout     = "2006-01-02"
	statusCompleted   = "completed"
)

// buildAggregate recomputes the dashboard statistics from a complete booking
// snapshot. It is a pure function of its inputs: the same bookings, clock and
// location always produce the same aggregate, regardless of input order
// (recent booking ties keep their input order).
func buildAggregate(bookings []models.Booking, now time.Time, loc *time.Location) dto.DashboardAggregate {
	if loc == nil {
		loc = time.UTC
	}

	today := now.In(loc)
	todayKey := today.Format(dateKeyLayout)

	dayKeys := make([]string, revenueWindowDays)
	dailyRevenue := make(map[string]float64, revenueWindowDays)
	for i := 0; i < revenueWindowDays; i++ {
		day := today.AddDate(0, 0, -(revenueWindowDays - 1 - i))
		key := day.Format(dateKeyLayout)
		dayKeys[i] = key
		dailyRevenue[key] = 0
	}

	aggregate := dto.DashboardAggregate{
		DailyRevenue:   make([]dto.DailyRevenuePoint, 0, revenueWindowDays),
		RecentBookings: make([]dto.RecentBooking, 0, len(bookings)),
		GeneratedAt:    now,
	}

	for _, booking := range bookings {
		record := normalizeBooking(booking, loc)

		if record.Status == statusCompleted {
			aggregate.TotalCompletedRevenue += record.Amount
		} else {
			aggregate.BadgeCount++
		}

		sortKey := int64(0)
		if !record.When.IsZero() {
			sortKey = record.When.UnixMilli()

			key := record.When.In(loc).Format(dateKeyLayout)
			if key == todayKey {
				aggregate.TodaysCount++
				aggregate.TodaysRevenue += record.Amount
			}
			// The window check is independent of the today check: a booking
			// dated today feeds both todays_revenue and the today slot.
			if _, ok := dailyRevenue[key]; ok {
				dailyRevenue[key] += record.Amount
			}
		}

		aggregate.RecentBookings = append(aggregate.RecentBookings, dto.RecentBooking{
			Booking: dto.NewBookingResponse(booking),
			SortKey: sortKey,
		})
	}

	sort.SliceStable(aggregate.RecentBookings, func(i, j int) bool {
		return aggregate.RecentBookings[i].SortKey > aggregate.RecentBookings[j].SortKey
	})

	for _, key := range dayKeys {
		aggregate.DailyRevenue = append(aggregate.DailyRevenue, dto.DailyRevenuePoint{
			Date:    key,
			Revenue: dailyRevenue[key],
		})
	}

	return aggregate
}
