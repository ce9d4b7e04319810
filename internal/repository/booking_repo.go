package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// BookingFilter defines filters for listing bookings.
type BookingFilter struct {
	Page     int
	PageSize int
	Status   string
	From     *time.Time
	To       *time.Time
	Search   string
}

// BookingRepository exposes persistence helpers for booking records.
type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id uint) (models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository constructs the booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if filter.Status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(filter.Status))
	}

	if filter.From != nil {
		query = query.Where("booked_at >= ?", *filter.From)
	}

	if filter.To != nil {
		query = query.Where("booked_at < ?", *filter.To)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(pickup_address) LIKE ? OR LOWER(drop_address) LIKE ?", like, like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var bookings []models.Booking
	if err := query.Preload("Customer").Preload("Driver").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListAll returns the complete booking set. The dashboard feed always reloads
// the whole collection rather than diffing individual changes.
func (r *bookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Driver").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Driver").
		Preload("Vehicle").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return models.Booking{}, err
	}

	return booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id)

	result := tx.Updates(updates)
	if result.Error != nil {
		return models.Booking{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Booking{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
