package models

import "time"

// Driver lifecycle states controlled by admin staff.
const (
	DriverStatusPending   = "pending"
	DriverStatusApproved  = "approved"
	DriverStatusSuspended = "suspended"
)

// Driver represents a driver profile including verification documents.
type Driver struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone         string    `gorm:"size:32;index" json:"phone"`
	LicenseNumber string    `gorm:"size:64" json:"license_number"`
	LicenseURL    string    `gorm:"size:1024" json:"license_url"`
	PhotoURL      string    `gorm:"size:1024" json:"photo_url"`
	Status        string    `gorm:"size:32;index;default:pending" json:"status"`
	Rating        float64   `gorm:"not null;default:0" json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Vehicles []Vehicle `json:"vehicles,omitempty"`
}
