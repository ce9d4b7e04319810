package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// VehicleFilter defines filters for listing vehicles.
type VehicleFilter struct {
	Page     int
	PageSize int
	Search   string
	DriverID *uint
	Active   *bool
}

// VehicleRepository exposes persistence helpers for vehicle records.
type VehicleRepository interface {
	List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, int64, error)
	GetByID(ctx context.Context, id uint) (models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Vehicle, error)
	Delete(ctx context.Context, id uint) error
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository constructs the vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Vehicle{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(plate_number) LIKE ? OR LOWER(model) LIKE ?", like, like)
	}

	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
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

	var vehicles []models.Vehicle
	if err := query.Preload("Driver").Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Preload("Driver").Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return models.Vehicle{}, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Vehicle, error) {
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Vehicle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Vehicle{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
