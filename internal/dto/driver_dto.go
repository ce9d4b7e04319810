package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// DriverListRequest defines filters for listing drivers.
type DriverListRequest struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// DriverCreateRequest captures the payload for registering a driver.
type DriverCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=6,max=32"`
	LicenseNumber string `json:"license_number" validate:"omitempty,max=64"`
}

// DriverUpdateRequest captures partial update payloads for drivers.
type DriverUpdateRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=2"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone" validate:"omitempty,min=6,max=32"`
	LicenseNumber *string  `json:"license_number" validate:"omitempty,max=64"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// DriverResponse serializes driver data for admin endpoints.
type DriverResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	LicenseURL    string    `json:"license_url"`
	PhotoURL      string    `json:"photo_url"`
	Status        string    `json:"status"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DriverListResponse wraps a paginated driver response.
type DriverListResponse struct {
	Items      []DriverResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewDriverResponse converts a driver model into a DTO.
func NewDriverResponse(driver models.Driver) DriverResponse {
	return DriverResponse{
		ID:            driver.ID,
		Name:          driver.Name,
		Email:         driver.Email,
		Phone:         driver.Phone,
		LicenseNumber: driver.LicenseNumber,
		LicenseURL:    driver.LicenseURL,
		PhotoURL:      driver.PhotoURL,
		Status:        driver.Status,
		Rating:        driver.Rating,
		CreatedAt:     driver.CreatedAt,
		UpdatedAt:     driver.UpdatedAt,
	}
}
