package models

import "time"

// Vehicle represents a car registered to the fleet.
type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlateNumber  string    `gorm:"size:32;uniqueIndex;not null" json:"plate_number"`
	Model        string    `gorm:"size:128" json:"model"`
	Color        string    `gorm:"size:64" json:"color"`
	Year         int       `json:"year"`
	Capacity     int       `gorm:"not null;default:4" json:"capacity"`
	PhotoURL     string    `gorm:"size:1024" json:"photo_url"`
	DriverID     *uint     `gorm:"index" json:"driver_id"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Driver *Driver `json:"driver,omitempty"`
}
