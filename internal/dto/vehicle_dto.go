package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// VehicleListRequest defines filters for listing vehicles.
type VehicleListRequest struct {
	Page     int
	PageSize int
	Search   string
	DriverID *uint
	Active   *bool
}

// VehicleCreateRequest captures the payload for registering a vehicle.
type VehicleCreateRequest struct {
	PlateNumber string `json:"plate_number" validate:"required,min=2,max=32"`
	Model       string `json:"model" validate:"omitempty,max=128"`
	Color       string `json:"color" validate:"omitempty,max=64"`
	Year        int    `json:"year" validate:"omitempty,gte=1990,lte=2100"`
	Capacity    int    `json:"capacity" validate:"omitempty,gte=1,lte=16"`
	DriverID    *uint  `json:"driver_id"`
}

// VehicleUpdateRequest captures partial update payloads for vehicles.
type VehicleUpdateRequest struct {
	PlateNumber *string `json:"plate_number" validate:"omitempty,min=2,max=32"`
	Model       *string `json:"model" validate:"omitempty,max=128"`
	Color       *string `json:"color" validate:"omitempty,max=64"`
	Year        *int    `json:"year" validate:"omitempty,gte=1990,lte=2100"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=1,lte=16"`
	DriverID    *uint   `json:"driver_id"`
	Active      *bool   `json:"active"`
}

// VehicleResponse serializes vehicle data for admin endpoints.
type VehicleResponse struct {
	ID          uint      `json:"id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model"`
	Color       string    `json:"color"`
	Year        int       `json:"year"`
	Capacity    int       `json:"capacity"`
	PhotoURL    string    `json:"photo_url"`
	DriverID    *uint     `json:"driver_id,omitempty"`
	DriverName  string    `json:"driver_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VehicleListResponse wraps a paginated vehicle response.
type VehicleListResponse struct {
	Items      []VehicleResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewVehicleResponse converts a vehicle model into a DTO.
func NewVehicleResponse(vehicle models.Vehicle) VehicleResponse {
	response := VehicleResponse{
		ID:          vehicle.ID,
		PlateNumber: vehicle.PlateNumber,
		Model:       vehicle.Model,
		Color:       vehicle.Color,
		Year:        vehicle.Year,
		Capacity:    vehicle.Capacity,
		PhotoURL:    vehicle.PhotoURL,
		DriverID:    vehicle.DriverID,
		Active:      vehicle.Active,
		CreatedAt:   vehicle.CreatedAt,
		UpdatedAt:   vehicle.UpdatedAt,
	}
	if vehicle.Driver != nil {
		response.DriverName = vehicle.Driver.Name
	}
	return response
}
