package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// RewardFilter defines filters for listing rewards.
type RewardFilter struct {
	Page       int
	PageSize   int
	Search     string
	ActiveOnly bool
}

// RewardRepository exposes persistence helpers for promotional rewards.
type RewardRepository interface {
	List(ctx context.Context, filter RewardFilter) ([]models.Reward, int64, error)
	GetByID(ctx context.Context, id uint) (models.Reward, error)
	Create(ctx context.Context, reward *models.Reward) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Reward, error)
	Delete(ctx context.Context, id uint) error
}

type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository constructs the reward repository.
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) List(ctx context.Context, filter RewardFilter) ([]models.Reward, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reward{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", like)
	}

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
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

	var rewards []models.Reward
	if err := query.Find(&rewards).Error; err != nil {
		return nil, 0, err
	}

	return rewards, total, nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id uint) (models.Reward, error) {
	var reward models.Reward
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reward).Error; err != nil {
		return models.Reward{}, err
	}

	return reward, nil
}

func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *rewardRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Reward, error) {
	result := r.db.WithContext(ctx).Model(&models.Reward{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Reward{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Reward{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *rewardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Reward{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
