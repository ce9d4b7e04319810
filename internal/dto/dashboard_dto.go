package dto

import "time"

// DailyRevenuePoint is a single day's revenue inside the trailing 7-day window.
type DailyRevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// RecentBooking annotates a booking with the millisecond key it is sorted by.
type RecentBooking struct {
	Booking BookingResponse `json:"booking"`
	SortKey int64           `json:"sort_key"`
}

// DashboardAggregate is the derived statistics object recomputed from each
// complete booking snapshot.
type DashboardAggregate struct {
	TodaysCount           int                 `json:"todays_count"`
	TodaysRevenue         float64             `json:"todays_revenue"`
	TotalCompletedRevenue float64             `json:"total_completed_revenue"`
	BadgeCount            int                 `json:"badge_count"`
	DailyRevenue          []DailyRevenuePoint `json:"daily_revenue"`
	RecentBookings        []RecentBooking     `json:"recent_bookings"`
	GeneratedAt           time.Time           `json:"generated_at"`
	CacheHit              bool                `json:"cache_hit"`
	FeedError             string              `json:"feed_error,omitempty"`
}

// DashboardSnapshot is the read-only view exposed by the booking feed.
// LoadedAt is the time of the last successful recompute; the zero value means
// no snapshot has ever been loaded.
type DashboardSnapshot struct {
	Aggregate   DashboardAggregate `json:"aggregate"`
	RawBookings []BookingResponse  `json:"raw_bookings"`
	IsLoading   bool               `json:"is_loading"`
	LastError   string             `json:"last_error,omitempty"`
	LoadedAt    time.Time          `json:"loaded_at"`
}
