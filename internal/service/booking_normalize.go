package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// Upstream producers have shipped several document shapes over time, so each
// logical attribute is resolved through a fixed, ordered field-priority list.
var (
	amountFieldPriority    = []string{"amount", "totalAmount", "customerFare"}
	timestampFieldPriority = []string{"bookingDateTime", "createdAt", "date"}
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizedBooking is the strongly typed record the aggregation runs on.
// When is the zero time for bookings without a resolvable timestamp.
type normalizedBooking struct {
	Amount float64
	Status string
	When   time.Time
}

// normalizeBooking resolves amount, status and timestamp from the raw upstream
// payload, falling back to the typed columns this service writes itself. Zone-less
// timestamp strings are interpreted in loc, the same location the day buckets use.
func normalizeBooking(booking models.Booking, loc *time.Location) normalizedBooking {
	return normalizedBooking{
		Amount: resolveAmount(booking),
		Status: resolveStatus(booking),
		When:   resolveTimestamp(booking, loc),
	}
}

func resolveAmount(booking models.Booking) float64 {
	for _, field := range amountFieldPriority {
		value, ok := booking.Payload[field]
		if !ok {
			continue
		}
		if amount, ok := coerceAmount(value); ok {
			return amount
		}
	}

	if booking.Amount >= 0 {
		return booking.Amount
	}

	return 0
}

func coerceAmount(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return v, true
	case float32:
		return coerceAmount(float64(v))
	case int:
		return coerceAmount(float64(v))
	case int64:
		return coerceAmount(float64(v))
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return coerceAmount(parsed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return coerceAmount(parsed)
	default:
		return 0, false
	}
}

func resolveStatus(booking models.Booking) string {
	if raw, ok := booking.Payload["status"]; ok {
		if status, ok := raw.(string); ok && strings.TrimSpace(status) != "" {
			return strings.ToLower(strings.TrimSpace(status))
		}
	}

	return strings.ToLower(strings.TrimSpace(booking.Status))
}

func resolveTimestamp(booking models.Booking, loc *time.Location) time.Time {
	for _, field := range timestampFieldPriority {
		value, ok := booking.Payload[field]
		if !ok {
			continue
		}
		if parsed, ok := coerceTimestamp(value, loc); ok {
			return parsed
		}
	}

	if booking.BookedAt != nil && !booking.BookedAt.IsZero() {
		return *booking.BookedAt
	}

	return time.Time{}
}

func coerceTimestamp(value interface{}, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := value.(type) {
	case float64:
		// Platform-native timestamps are seconds based.
		if v <= 0 {
			return time.Time{}, false
		}
		seconds := int64(v)
		nanos := int64((v - float64(seconds)) * float64(time.Second))
		return time.Unix(seconds, nanos), true
	case int64:
		return coerceTimestamp(float64(v), loc)
	case int:
		return coerceTimestamp(float64(v), loc)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return coerceTimestamp(parsed, loc)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		// Only RFC3339 carries an offset. The remaining layouts are zone-less
		// and must be read in the bucketing location, or a date-only value
		// slides into the neighbouring day for any non-UTC deployment.
		for _, layout := range timestampLayouts {
			if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case map[string]interface{}:
		// Some producers nest the platform timestamp as {"seconds": n}.
		if seconds, ok := v["seconds"]; ok {
			return coerceTimestamp(seconds, loc)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
