package dto

import (
	"time"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the token and staff profile.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     StaffResponse `json:"staff"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	Designation domain.Designation `json:"designation"`
	ReporterID  *string            `json:"reporter_id"`
}

// UpdateStaffRequest payload.
type UpdateStaffRequest struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Designation domain.Designation `json:"designation"`
	ReporterID  *string            `json:"reporter_id"`
	Active      bool               `json:"active"`
}

// StaffResponse represents a staff user.
type StaffResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Designation domain.Designation `json:"designation"`
	ReporterID  *string            `json:"reporter_id"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
