package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	adminRequestsTotal       *prometheus.CounterVec
	adminLatencySeconds      *prometheus.HistogramVec
	adminErrorsTotal         *prometheus.CounterVec
	dashboardRefreshTotal    *prometheus.CounterVec
	dashboardRefreshSeconds  prometheus.Histogram
	dashboardStreamClients   prometheus.Gauge
	bookingEventsTotal       *prometheus.CounterVec
	uploadLatencySeconds     prometheus.Histogram
	uploadRejectedTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the admin API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saqer_admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "saqer_admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saqer_admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		dashboardRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saqer_dashboard_refresh_total",
			Help: "Total number of dashboard snapshot recomputations by outcome.",
		}, []string{"outcome"})

		dashboardRefreshSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "saqer_dashboard_refresh_seconds",
			Help:    "Duration of dashboard snapshot reload and recompute.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		dashboardStreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "saqer_dashboard_stream_clients",
			Help: "Number of currently attached dashboard stream consumers.",
		})

		bookingEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saqer_booking_events_total",
			Help: "Total number of booking change events published.",
		}, []string{"action"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "saqer_upload_latency_seconds",
			Help:    "Duration of file upload handling.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saqer_upload_rejected_total",
			Help: "Total number of uploads rejected during validation.",
		}, []string{"reason"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			dashboardRefreshTotal,
			dashboardRefreshSeconds,
			dashboardStreamClients,
			bookingEventsTotal,
			uploadLatencySeconds,
			uploadRejectedTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// DashboardRefreshTotal exposes the counter for snapshot recomputations.
func DashboardRefreshTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardRefreshTotal
}

// DashboardRefreshDuration exposes the recompute duration histogram.
func DashboardRefreshDuration() prometheus.Histogram {
	RegisterMetrics()
	return dashboardRefreshSeconds
}

// DashboardStreamClients exposes the gauge of attached stream consumers.
func DashboardStreamClients() prometheus.Gauge {
	RegisterMetrics()
	return dashboardStreamClients
}

// BookingEventsPublished exposes the counter for booking change events.
func BookingEventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return bookingEventsTotal
}

// UploadLatency exposes the upload duration histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}
