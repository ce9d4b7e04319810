package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
)

// ErrDashboardUnavailable indicates no snapshot has been computed yet and the
// upstream subscription has already failed.
var ErrDashboardUnavailable = errors.New("dashboard data unavailable")

// DashboardService exposes the derived booking statistics to handlers.
type DashboardService interface {
	Summary(ctx context.Context) (dto.DashboardAggregate, error)
	Snapshot() dto.DashboardSnapshot
}

type dashboardService struct {
	feed     BookingFeed
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(feed BookingFeed, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		feed:     feed,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Summary(ctx context.Context) (dto.DashboardAggregate, error) {
	const cacheKey = "dashboard:summary"
	tracer := otel.Tracer("github.com/saqerservice/saqer-admin-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.summary")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	snapshot := s.feed.Snapshot()
	if !snapshot.IsLoading && snapshot.LastError == "" {
		span.SetAttributes(attribute.Int("dashboard.booking_count", len(snapshot.RawBookings)))
		s.store(ctx, cacheKey, snapshot.Aggregate)
		return snapshot.Aggregate, nil
	}

	// A failed refresh leaves the last successful aggregate in place. Keep
	// serving it, with the failure surfaced, until a reload succeeds.
	if snapshot.LastError != "" && !snapshot.LoadedAt.IsZero() {
		span.SetAttributes(attribute.String("dashboard.last_error", snapshot.LastError))
		aggregate := snapshot.Aggregate
		aggregate.FeedError = snapshot.LastError
		return aggregate, nil
	}

	// Nothing has ever been computed. Serve the cached aggregate if present so
	// a failed first load degrades to stale data instead of a blank screen.
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var aggregate dto.DashboardAggregate
			if unmarshalErr := json.Unmarshal([]byte(cached), &aggregate); unmarshalErr == nil {
				aggregate.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return aggregate, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	if snapshot.LastError != "" {
		span.SetAttributes(attribute.String("dashboard.last_error", snapshot.LastError))
		return dto.DashboardAggregate{}, ErrDashboardUnavailable
	}

	// Still loading and nothing cached: return the empty default aggregate.
	return snapshot.Aggregate, nil
}

func (s *dashboardService) Snapshot() dto.DashboardSnapshot {
	return s.feed.Snapshot()
}

func (s *dashboardService) store(ctx context.Context, key string, aggregate dto.DashboardAggregate) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(aggregate)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
	}
}
