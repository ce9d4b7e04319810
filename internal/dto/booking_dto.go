package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// BookingListRequest defines filters for listing bookings.
type BookingListRequest struct {
	Page     int
	PageSize int
	Status   string
	From     *time.Time
	To       *time.Time
	Search   string
}

// BookingCreateRequest captures the payload for a manually created booking.
type BookingCreateRequest struct {
	CustomerID    *uint                  `json:"customer_id"`
	DriverID      *uint                  `json:"driver_id"`
	VehicleID     *uint                  `json:"vehicle_id"`
	PickupAddress string                 `json:"pickup_address" validate:"required,min=3"`
	DropAddress   string                 `json:"drop_address" validate:"required,min=3"`
	Amount        float64                `json:"amount" validate:"gte=0"`
	Status        string                 `json:"status" validate:"omitempty,oneof=pending active dispatched completed cancelled"`
	BookedAt      *time.Time             `json:"booked_at"`
	Payload       map[string]interface{} `json:"payload"`
}

// BookingUpdateRequest captures partial update payloads for bookings.
type BookingUpdateRequest struct {
	DriverID      *uint      `json:"driver_id"`
	VehicleID     *uint      `json:"vehicle_id"`
	PickupAddress *string    `json:"pickup_address" validate:"omitempty,min=3"`
	DropAddress   *string    `json:"drop_address" validate:"omitempty,min=3"`
	Amount        *float64   `json:"amount" validate:"omitempty,gte=0"`
	BookedAt      *time.Time `json:"booked_at"`
}

// BookingStatusRequest carries a status transition for a booking.
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active dispatched completed cancelled"`
}

// BookingResponse serializes booking data for admin endpoints.
type BookingResponse struct {
	ID            uint       `json:"id"`
	Code          string     `json:"code"`
	CustomerID    *uint      `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	DriverID      *uint      `json:"driver_id,omitempty"`
	DriverName    string     `json:"driver_name,omitempty"`
	VehicleID     *uint      `json:"vehicle_id,omitempty"`
	PickupAddress string     `json:"pickup_address"`
	DropAddress   string     `json:"drop_address"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	BookedAt      *time.Time `json:"booked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BookingListResponse wraps a paginated booking response.
type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewBookingResponse converts a booking model into a DTO.
func NewBookingResponse(booking models.Booking) BookingResponse {
	response := BookingResponse{
		ID:            booking.ID,
		Code:          booking.Code,
		CustomerID:    booking.CustomerID,
		DriverID:      booking.DriverID,
		VehicleID:     booking.VehicleID,
		PickupAddress: booking.PickupAddress,
		DropAddress:   booking.DropAddress,
		Amount:        booking.Amount,
		Status:        booking.Status,
		BookedAt:      booking.BookedAt,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
	if booking.Customer != nil {
		response.CustomerName = booking.Customer.Name
	}
	if booking.Driver != nil {
		response.DriverName = booking.Driver.Name
	}
	return response
}
