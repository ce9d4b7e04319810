package service

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

type recordingPublisher struct {
	mu      sync.Mutex
	actions []string
}

func (p *recordingPublisher) BookingsChanged(_ context.Context, action string, _ uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, action)
}

func (p *recordingPublisher) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.actions...)
}

func newBookingServiceForTest(t *testing.T) (BookingService, *recordingPublisher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:bookingsvc?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Driver{}, &models.Booking{}))
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)

	publisher := &recordingPublisher{}
	svc := NewBookingService(
		repository.NewBookingRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		publisher,
		nil,
		zerolog.Nop(),
	)

	return svc, publisher
}

func TestBookingServiceCreatePublishesChangeEvent(t *testing.T) {
	svc, publisher := newBookingServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.BookingCreateRequest{
		PickupAddress: "Airport Terminal 1",
		DropAddress:   "Downtown Plaza",
		Amount:        42,
	}, ActivityActor{ID: 1, Role: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, created.Code)
	require.Equal(t, models.BookingStatusPending, created.Status)

	require.Equal(t, []string{"create"}, publisher.all())
}

func TestBookingServiceStatusLifecycle(t *testing.T) {
	svc, publisher := newBookingServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.BookingCreateRequest{
		PickupAddress: "Airport Terminal 1",
		DropAddress:   "Downtown Plaza",
		Amount:        42,
	}, ActivityActor{})
	require.NoError(t, err)

	active, err := svc.UpdateStatus(ctx, created.ID, dto.BookingStatusRequest{Status: "active"}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusActive, active.Status)

	completed, err := svc.UpdateStatus(ctx, created.ID, dto.BookingStatusRequest{Status: "completed"}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusCompleted, completed.Status)

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, created.ID, dto.BookingStatusRequest{Status: "pending"}, ActivityActor{})
	require.ErrorIs(t, err, ErrInvalidStatusTransition)

	require.Equal(t, []string{"create", "status", "status"}, publisher.all())
}

func TestBookingServiceStatusIsIdempotentForSameValue(t *testing.T) {
	svc, _ := newBookingServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.BookingCreateRequest{
		PickupAddress: "Airport Terminal 1",
		DropAddress:   "Downtown Plaza",
		Amount:        10,
	}, ActivityActor{})
	require.NoError(t, err)

	same, err := svc.UpdateStatus(ctx, created.ID, dto.BookingStatusRequest{Status: "pending"}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, same.Status)
}

func TestBookingServiceUpdateUnknownBooking(t *testing.T) {
	svc, _ := newBookingServiceForTest(t)
	ctx := context.Background()

	address := "New Pickup Street"
	_, err := svc.Update(ctx, 9999, dto.BookingUpdateRequest{PickupAddress: &address}, ActivityActor{})
	require.ErrorIs(t, err, ErrBookingNotFound)

	require.ErrorIs(t, svc.Delete(ctx, 9999, ActivityActor{}), ErrBookingNotFound)
}

func TestBookingServiceCreateValidatesPayload(t *testing.T) {
	svc, publisher := newBookingServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.BookingCreateRequest{PickupAddress: "x"}, ActivityActor{})
	require.Error(t, err)
	require.Empty(t, publisher.all())
}
