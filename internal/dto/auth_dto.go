package dto

import (
	"time"

	"github.com/saqerservice/saqer-admin-api/internal/models"
)

// LoginRequest carries staff credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries a refresh token to exchange for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPairResponse holds the issued access and refresh tokens.
type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginResponse combines the token pair with the authenticated staff profile.
type LoginResponse struct {
	Tokens TokenPairResponse `json:"tokens"`
	Staff  StaffResponse     `json:"staff"`
}

// StaffCreateRequest captures the payload for provisioning a staff account.
type StaffCreateRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin operator"`
}

// StaffResponse serializes a staff account without credential material.
type StaffResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Disabled    bool       `json:"disabled"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewStaffResponse converts a staff model into a DTO.
func NewStaffResponse(staff models.StaffUser) StaffResponse {
	return StaffResponse{
		ID:          staff.ID,
		Name:        staff.Name,
		Email:       staff.Email,
		Role:        staff.Role,
		Disabled:    staff.Disabled,
		LastLoginAt: staff.LastLoginAt,
		CreatedAt:   staff.CreatedAt,
	}
}
