package models

import "time"

// Customer represents a rider account managed through the admin dashboard.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone     string    `gorm:"size:32;index" json:"phone"`
	City      string    `gorm:"size:128" json:"city"`
	Blocked   bool      `gorm:"not null;default:false" json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
