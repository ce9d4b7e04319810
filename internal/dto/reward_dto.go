package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// RewardListRequest defines filters for listing rewards.
type RewardListRequest struct {
	Page       int
	PageSize   int
	Search     string
	ActiveOnly bool
}

// RewardCreateRequest captures the payload for creating a promotional reward.
type RewardCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"omitempty,max=4000"`
	Points      int        `json:"points" validate:"gte=0"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// RewardUpdateRequest captures partial update payloads for rewards.
type RewardUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	Points      *int       `json:"points" validate:"omitempty,gte=0"`
	Active      *bool      `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// RewardResponse serializes reward data for admin endpoints.
type RewardResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	ImageURL    string     `json:"image_url"`
	Active      bool       `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RewardListResponse wraps a paginated reward response.
type RewardListResponse struct {
	Items      []RewardResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewRewardResponse converts a reward model into a DTO.
func NewRewardResponse(reward models.Reward) RewardResponse {
	return RewardResponse{
		ID:          reward.ID,
		Title:       reward.Title,
		Description: reward.Description,
		Points:      reward.Points,
		ImageURL:    reward.ImageURL,
		Active:      reward.Active,
		ExpiresAt:   reward.ExpiresAt,
		CreatedAt:   reward.CreatedAt,
		UpdatedAt:   reward.UpdatedAt,
	}
}
