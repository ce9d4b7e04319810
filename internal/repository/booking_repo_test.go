package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:bookingrepo?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Booking{},
	))
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)
	require.NoError(t, db.Exec("DELETE FROM customers").Error)
	require.NoError(t, db.Exec("DELETE FROM drivers").Error)

	return db
}

func TestBookingRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	earlier := now.Add(-48 * time.Hour)

	bookings := []models.Booking{
		{Code: "BK-100", Status: models.BookingStatusCompleted, Amount: 80, BookedAt: &now, PickupAddress: "Airport Road"},
		{Code: "BK-101", Status: models.BookingStatusPending, Amount: 20, BookedAt: &earlier, PickupAddress: "Old Town"},
		{Code: "BK-102", Status: models.BookingStatusCompleted, Amount: 35, BookedAt: &earlier, PickupAddress: "Harbor"},
	}
	for i := range bookings {
		require.NoError(t, repo.Create(ctx, &bookings[i]))
	}

	completed, total, err := repo.List(ctx, BookingFilter{Status: "Completed"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, completed, 2)

	recent, total, err := repo.List(ctx, BookingFilter{From: timePointer(now.Add(-time.Hour))})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "BK-100", recent[0].Code)

	searched, total, err := repo.List(ctx, BookingFilter{Search: "harbor"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "BK-102", searched[0].Code)

	paged, total, err := repo.List(ctx, BookingFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, paged, 2)
}

func TestBookingRepositoryListAllReturnsEverything(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		booking := models.Booking{
			Code:    fmt.Sprintf("BK-%03d", i),
			Status:  models.BookingStatusPending,
			Payload: datatypes.JSONMap{"amount": float64(i * 10)},
		}
		require.NoError(t, repo.Create(ctx, &booking))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.NotNil(t, all[0].Payload)
}

func TestBookingRepositoryUpdateMissingRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	_, err := repo.Update(ctx, 9999, map[string]interface{}{"status": models.BookingStatusActive})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.ErrorIs(t, repo.Delete(ctx, 9999), gorm.ErrRecordNotFound)
}

func TestBookingRepositoryUpdateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := models.Booking{Code: "BK-200", Status: models.BookingStatusPending, Amount: 10}
	require.NoError(t, repo.Create(ctx, &booking))

	updated, err := repo.Update(ctx, booking.ID, map[string]interface{}{
		"status": models.BookingStatusActive,
		"amount": 45.0,
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusActive, updated.Status)
	require.Equal(t, 45.0, updated.Amount)

	fetched, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.Equal(t, "BK-200", fetched.Code)
}

func timePointer(v time.Time) *time.Time {
	return &v
}
