package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterClientRequest struct {
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password" validate:"required,min=6"`
	FullName         string   `json:"full_name" validate:"required,min=2"`
	PhoneNumber      string   `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address          string   `json:"address" validate:"omitempty"`
	EmergencyContact string   `json:"emergency_contact" validate:"omitempty"`
	Pets             []string `json:"pets" validate:"omitempty,dive,min=1"`
}

type RegisterSitterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography   string `json:"biography" validate:"omitempty"`
	ServiceArea string `json:"service_area" validate:"omitempty"`
	HourlyRate  string `json:"hourly_rate" validate:"required"` // Decimal string, e.g. "25.00"
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID            uuid.UUID              `json:"id"`
	Email         string                 `json:"email"`
	FullName      string                 `json:"full_name"`
	Role          string                 `json:"role"`
	SitterProfile *SitterProfileResponse `json:"sitter_profile,omitempty"`
	ClientProfile *ClientProfileResponse `json:"client_profile,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type SitterProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Biography   string    `json:"biography,omitempty"`
	ServiceArea string    `json:"service_area,omitempty"`
	HourlyRate  string    `json:"hourly_rate"`
}

type ClientProfileResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Pets             []string  `json:"pets,omitempty"`
}
