package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/observability"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

const feedSubscriberBuffer = 8

// BookingFeed owns the dashboard's subscription to booking changes. Every
// change signal triggers a reload of the complete booking set followed by a
// full recompute of the aggregate; consumers only ever observe the finished
// result of a recompute, never a partial one.
type BookingFeed interface {
	Start(ctx context.Context)
	Refresh(ctx context.Context)
	Snapshot() dto.DashboardSnapshot
	Subscribe() (<-chan dto.DashboardAggregate, func())
}

type bookingFeed struct {
	repo         repository.BookingRepository
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	refresh      time.Duration
	location     *time.Location
	logger       zerolog.Logger
	tracer       trace.Tracer
	now          func() time.Time

	// kick serialises recomputation: however many change signals arrive,
	// at most one refresh runs at a time and at most one more is queued.
	kick chan struct{}

	mu       sync.RWMutex
	snapshot dto.DashboardSnapshot

	subMu       sync.Mutex
	subscribers map[chan dto.DashboardAggregate]struct{}
}

// NewBookingFeed constructs the dashboard booking feed. The timezone names the
// IANA location used for calendar-day bucketing; invalid or empty values fall
// back to UTC.
func NewBookingFeed(repo repository.BookingRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, refresh time.Duration, timezone string, logger zerolog.Logger) BookingFeed {
	location, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		location = time.UTC
	}

	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":bookings"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".bookings"
	}

	if refresh <= 0 {
		refresh = time.Minute
	}

	return &bookingFeed{
		repo:         repo,
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		refresh:      refresh,
		location:     location,
		logger:       logger.With().Str("component", "booking_feed").Logger(),
		tracer:       otel.Tracer("github.com/saqerservice/saqer-admin-api/internal/service/booking_feed"),
		now:          time.Now,
		kick:         make(chan struct{}, 1),
		snapshot: dto.DashboardSnapshot{
			Aggregate: buildAggregate(nil, time.Now(), location),
			IsLoading: true,
		},
		subscribers: make(map[chan dto.DashboardAggregate]struct{}),
	}
}

// Start launches the change-event consumers and the periodic refresh loop.
// It returns after scheduling; the feed stops when ctx is cancelled.
func (f *bookingFeed) Start(ctx context.Context) {
	go f.run(ctx)

	if f.nats != nil && f.natsSubject != "" {
		go f.consumeNATS(ctx)
	}
	if f.redis != nil && f.redisChannel != "" {
		go f.consumeRedis(ctx)
	}

	f.trigger()
}

func (f *bookingFeed) run(ctx context.Context) {
	ticker := time.NewTicker(f.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Refresh(ctx)
		case <-f.kick:
			f.Refresh(ctx)
		}
	}
}

func (f *bookingFeed) consumeNATS(ctx context.Context) {
	sub, err := f.nats.Subscribe(f.natsSubject, func(msg *nats.Msg) {
		f.trigger()
	})
	if err != nil {
		f.logger.Error().Err(err).Str("subject", f.natsSubject).Msg("failed to subscribe to booking events")
		f.setError(err)
		return
	}
	defer func() {
		_ = sub.Unsubscribe()
	}()

	<-ctx.Done()
}

func (f *bookingFeed) consumeRedis(ctx context.Context) {
	pubsub := f.redis.Subscribe(ctx, f.redisChannel)
	defer pubsub.Close()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-channel:
			if !ok {
				return
			}
			f.trigger()
		}
	}
}

func (f *bookingFeed) trigger() {
	select {
	case f.kick <- struct{}{}:
	default:
	}
}

// Refresh reloads the whole booking set and recomputes the aggregate. On
// failure the previous aggregate stays visible and only the error flag moves.
func (f *bookingFeed) Refresh(ctx context.Context) {
	ctx, span := f.tracer.Start(ctx, "dashboard.refresh")
	defer span.End()

	start := time.Now()
	bookings, err := f.repo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		observability.DashboardRefreshTotal().WithLabelValues("error").Inc()
		f.logger.Error().Err(err).Msg("failed to load booking snapshot")
		f.setError(err)
		return
	}

	aggregate := buildAggregate(bookings, f.now(), f.location)

	raw := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		raw = append(raw, dto.NewBookingResponse(booking))
	}

	f.mu.Lock()
	f.snapshot = dto.DashboardSnapshot{
		Aggregate:   aggregate,
		RawBookings: raw,
		IsLoading:   false,
		LoadedAt:    aggregate.GeneratedAt,
	}
	f.mu.Unlock()

	span.SetAttributes(
		attribute.Int("dashboard.booking_count", len(bookings)),
		attribute.Int("dashboard.badge_count", aggregate.BadgeCount),
	)
	observability.DashboardRefreshTotal().WithLabelValues("ok").Inc()
	observability.DashboardRefreshDuration().Observe(time.Since(start).Seconds())

	f.broadcast(aggregate)
}

func (f *bookingFeed) setError(err error) {
	f.mu.Lock()
	f.snapshot.IsLoading = false
	f.snapshot.LastError = err.Error()
	f.mu.Unlock()
}

// Snapshot returns the current read-only dashboard view.
func (f *bookingFeed) Snapshot() dto.DashboardSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

// Subscribe attaches a consumer to aggregate updates. The returned cancel
// function releases the subscription and is safe to call more than once.
func (f *bookingFeed) Subscribe() (<-chan dto.DashboardAggregate, func()) {
	ch := make(chan dto.DashboardAggregate, feedSubscriberBuffer)

	f.subMu.Lock()
	f.subscribers[ch] = struct{}{}
	observability.DashboardStreamClients().Set(float64(len(f.subscribers)))
	f.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.subMu.Lock()
			delete(f.subscribers, ch)
			observability.DashboardStreamClients().Set(float64(len(f.subscribers)))
			f.subMu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

func (f *bookingFeed) broadcast(aggregate dto.DashboardAggregate) {
	f.subMu.Lock()
	defer f.subMu.Unlock()

	for ch := range f.subscribers {
		select {
		case ch <- aggregate:
		default:
			// Slow consumers miss intermediate aggregates; most-recent-wins.
		}
	}
}
