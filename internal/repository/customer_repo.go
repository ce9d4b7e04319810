package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// CustomerFilter defines filters for listing customers.
type CustomerFilter struct {
	Page     int
	PageSize int
	Search   string
	City     string
}

// CustomerRepository exposes persistence helpers for customer records.
type CustomerRepository interface {
	List(ctx context.Context, filter CustomerFilter) ([]models.Customer, int64, error)
	GetByID(ctx context.Context, id uint) (models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository constructs the customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]models.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
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

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return models.Customer{}, err
	}

	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Customer, error) {
	result := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Customer{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Customer{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
