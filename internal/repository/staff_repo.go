package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// StaffRepository exposes persistence helpers for staff accounts.
type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (models.StaffUser, error)
	GetByID(ctx context.Context, id uint) (models.StaffUser, error)
	Create(ctx context.Context, staff *models.StaffUser) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	Count(ctx context.Context) (int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository constructs the staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (models.StaffUser, error) {
	var staff models.StaffUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&staff).Error
	if err != nil {
		return models.StaffUser{}, err
	}

	return staff, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uint) (models.StaffUser, error) {
	var staff models.StaffUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return models.StaffUser{}, err
	}

	return staff, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *models.StaffUser) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StaffUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *staffRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Count(&count).Error
	return count, err
}
