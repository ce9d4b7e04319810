package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

func TestResolveAmountFieldPriority(t *testing.T) {
	booking := payloadBooking(1, map[string]interface{}{
		"amount":       float64(10),
		"totalAmount":  float64(20),
		"customerFare": float64(30),
	})
	require.Equal(t, 10.0, resolveAmount(booking))

	booking = payloadBooking(1, map[string]interface{}{
		"totalAmount":  float64(20),
		"customerFare": float64(30),
	})
	require.Equal(t, 20.0, resolveAmount(booking))

	booking = payloadBooking(1, map[string]interface{}{
		"customerFare": float64(30),
	})
	require.Equal(t, 30.0, resolveAmount(booking))
}

func TestResolveAmountSkipsUnparseableValues(t *testing.T) {
	booking := payloadBooking(1, map[string]interface{}{
		"amount":      "not-a-number",
		"totalAmount": "45.5",
	})
	require.Equal(t, 45.5, resolveAmount(booking))
}

func TestResolveAmountCoercions(t *testing.T) {
	cases := map[string]interface{}{
		"float":  float64(12.5),
		"int":    int(12),
		"int64":  int64(12),
		"string": "12.5",
		"number": json.Number("12.5"),
	}

	for name, value := range cases {
		booking := payloadBooking(1, map[string]interface{}{"amount": value})
		amount := resolveAmount(booking)
		require.Greater(t, amount, 0.0, "case %s", name)
	}
}

func TestResolveAmountFallsBackToColumn(t *testing.T) {
	booking := models.Booking{Amount: 75, Payload: datatypes.JSONMap{}}
	require.Equal(t, 75.0, resolveAmount(booking))

	booking = models.Booking{Payload: nil}
	require.Equal(t, 0.0, resolveAmount(booking))
}

func TestResolveStatusNormalizesCase(t *testing.T) {
	booking := payloadBooking(1, map[string]interface{}{"status": "  COMPLETED  "})
	require.Equal(t, "completed", resolveStatus(booking))

	booking = models.Booking{Status: "Pending"}
	require.Equal(t, "pending", resolveStatus(booking))
}

func TestResolveTimestampFieldPriority(t *testing.T) {
	primary := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	secondary := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	booking := payloadBooking(1, map[string]interface{}{
		"bookingDateTime": float64(primary.Unix()),
		"createdAt":       float64(secondary.Unix()),
	})
	require.Equal(t, primary.Unix(), resolveTimestamp(booking, time.UTC).Unix())

	booking = payloadBooking(1, map[string]interface{}{
		"createdAt": float64(secondary.Unix()),
	})
	require.Equal(t, secondary.Unix(), resolveTimestamp(booking, time.UTC).Unix())
}

func TestResolveTimestampStringLayouts(t *testing.T) {
	cases := []string{
		"2025-03-10T08:00:00Z",
		"2025-03-10T08:00:00",
		"2025-03-10 08:00:00",
		"2025-03-10",
	}

	for _, raw := range cases {
		booking := payloadBooking(1, map[string]interface{}{"date": raw})
		parsed := resolveTimestamp(booking, time.UTC)
		require.False(t, parsed.IsZero(), "layout %q", raw)
		require.Equal(t, 2025, parsed.Year())
	}
}

func TestResolveTimestampZoneLessStringsUseLocation(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	booking := payloadBooking(1, map[string]interface{}{"date": "2025-03-10"})
	parsed := resolveTimestamp(booking, riyadh)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, riyadh), parsed)

	// An explicit offset wins over the configured location.
	booking = payloadBooking(1, map[string]interface{}{"date": "2025-03-10T08:00:00Z"})
	parsed = resolveTimestamp(booking, riyadh)
	require.Equal(t, int64(1741593600), parsed.Unix())
}

func TestResolveTimestampNestedSeconds(t *testing.T) {
	when := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	booking := payloadBooking(1, map[string]interface{}{
		"bookingDateTime": map[string]interface{}{"seconds": float64(when.Unix())},
	})
	require.Equal(t, when.Unix(), resolveTimestamp(booking, time.UTC).Unix())
}

func TestResolveTimestampFallsBackToColumn(t *testing.T) {
	when := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	booking := models.Booking{BookedAt: &when}
	require.Equal(t, when, resolveTimestamp(booking, time.UTC))

	require.True(t, resolveTimestamp(models.Booking{}, time.UTC).IsZero())
}

func TestResolveTimestampRejectsGarbage(t *testing.T) {
	booking := payloadBooking(1, map[string]interface{}{
		"bookingDateTime": "soon",
		"createdAt":       float64(-5),
	})
	require.True(t, resolveTimestamp(booking, time.UTC).IsZero())
}
