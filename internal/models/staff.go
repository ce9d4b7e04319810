package models

import "time"

// Staff roles recognised by the RBAC middleware.
const (
	StaffRoleAdmin    = "admin"
	StaffRoleOperator = "operator"
)

// StaffUser represents a dashboard operator account.
type StaffUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:operator" json:"role"`
	Disabled     bool      `gorm:"not null;default:false" json:"disabled"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
