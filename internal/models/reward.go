package models

import "time"

// Reward represents a promotional reward redeemable by customers.
type Reward struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Points      int        `gorm:"not null;default:0" json:"points"`
	ImageURL    string     `gorm:"size:1024" json:"image_url"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
