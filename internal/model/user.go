package model

import (
	"time"
)

// Account roles. Staff accounts are provisioned directly; self-registration
// always produces a patient.
const (
	RolePatient = "patient"
	RoleStaff   = "staff"
)

// User represents a registered account.
type User struct {
	Base
	Email               string     `json:"email" db:"email"`
	Name                string     `json:"name" db:"name"`
	Role                string     `json:"role" db:"role"`
	Phone               string     `json:"phone" db:"phone"`
	Address             string     `json:"address" db:"address"`
	Weight              *float64   `json:"weight,omitempty" db:"weight"`
	Height              *float64   `json:"height,omitempty" db:"height"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockedUntil         *time.Time `json:"-" db:"locked_until"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email" binding:"omitempty,email"`
	Phone   *string  `json:"phone"`
	Address *string  `json:"address"`
	Weight  *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height  *float64 `json:"height" binding:"omitempty,gt=0"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}
