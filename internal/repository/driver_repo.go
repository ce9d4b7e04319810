package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// DriverFilter defines filters for listing drivers.
type DriverFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// DriverRepository exposes persistence helpers for driver records.
type DriverRepository interface {
	List(ctx context.Context, filter DriverFilter) ([]models.Driver, int64, error)
	GetByID(ctx context.Context, id uint) (models.Driver, error)
	Create(ctx context.Context, driver *models.Driver) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Driver, error)
	Delete(ctx context.Context, id uint) error
}

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository constructs the driver repository.
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) List(ctx context.Context, filter DriverFilter) ([]models.Driver, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Driver{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToLower(filter.Status))
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
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		return nil, 0, err
	}

	return drivers, total, nil
}

func (r *driverRepository) GetByID(ctx context.Context, id uint) (models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).Preload("Vehicles").Where("id = ?", id).First(&driver).Error
	if err != nil {
		return models.Driver{}, err
	}

	return driver, nil
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *driverRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Driver, error) {
	result := r.db.WithContext(ctx).Model(&models.Driver{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Driver{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Driver{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *driverRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Driver{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
