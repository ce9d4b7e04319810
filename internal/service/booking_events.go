package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/saqerservice/saqer-admin-api/internal/observability"
)

// BookingEventPublisher signals that the booking collection changed. The
// dashboard feed listens for these signals and reloads its snapshot; the
// payload intentionally carries no booking data.
type BookingEventPublisher interface {
	BookingsChanged(ctx context.Context, action string, bookingID uint)
}

type bookingChangeEvent struct {
	Action    string    `json:"action"`
	BookingID uint      `json:"booking_id"`
	SentAt    time.Time `json:"sent_at"`
}

type bookingEventPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
}

// NewBookingEventPublisher constructs a publisher for booking change events.
func NewBookingEventPublisher(redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) BookingEventPublisher {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":bookings"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".bookings"
	}

	return &bookingEventPublisher{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "booking_events").Logger(),
	}
}

func (p *bookingEventPublisher) BookingsChanged(ctx context.Context, action string, bookingID uint) {
	event := bookingChangeEvent{
		Action:    action,
		BookingID: bookingID,
		SentAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode booking change event")
		return
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			p.logger.Warn().Err(err).Str("subject", p.natsSubject).Msg("failed to publish booking change to nats")
		}
	}

	if p.redis != nil && p.redisChannel != "" {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Str("channel", p.redisChannel).Msg("failed to publish booking change to redis")
		}
	}

	observability.BookingEventsPublished().WithLabelValues(action).Inc()
}
