package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// CustomerListRequest defines filters for listing customers.
type CustomerListRequest struct {
	Page     int
	PageSize int
	Search   string
	City     string
}

// CustomerCreateRequest captures the payload for registering a customer.
type CustomerCreateRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=6,max=32"`
	City  string `json:"city" validate:"omitempty,max=128"`
}

// CustomerUpdateRequest captures partial update payloads for customers.
type CustomerUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,min=6,max=32"`
	City    *string `json:"city" validate:"omitempty,max=128"`
	Blocked *bool   `json:"blocked"`
}

// CustomerResponse serializes customer data for admin endpoints.
type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse wraps a paginated customer response.
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewCustomerResponse converts a customer model into a DTO.
func NewCustomerResponse(customer models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		City:      customer.City,
		Blocked:   customer.Blocked,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
