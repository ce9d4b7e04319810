package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking status labels as stored upstream. Comparison is always case-insensitive.
const (
	BookingStatusPending    = "pending"
	BookingStatusActive     = "active"
	BookingStatusDispatched = "dispatched"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a single ride order. The typed columns cover what this
// service writes itself; Payload carries the original upstream document, whose
// field names vary between producer versions (amount/totalAmount/customerFare,
// bookingDateTime/createdAt/date).
type Booking struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Code          string            `gorm:"size:32;uniqueIndex" json:"code"`
	CustomerID    *uint             `gorm:"index" json:"customer_id"`
	DriverID      *uint             `gorm:"index" json:"driver_id"`
	VehicleID     *uint             `gorm:"index" json:"vehicle_id"`
	PickupAddress string            `gorm:"size:512" json:"pickup_address"`
	DropAddress   string            `gorm:"size:512" json:"drop_address"`
	Amount        float64           `gorm:"not null;default:0" json:"amount"`
	Status        string            `gorm:"size:32;index;default:pending" json:"status"`
	BookedAt      *time.Time        `gorm:"index" json:"booked_at"`
	Payload       datatypes.JSONMap `gorm:"type:json" json:"payload"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty"`
	Driver   *Driver   `json:"driver,omitempty"`
	Vehicle  *Vehicle  `json:"vehicle,omitempty"`
}
