package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type JoinWaitlistRequest struct {
	ServiceType         string   `json:"service_type" validate:"required,min=2"`
	RequestedDate       string   `json:"requested_date" validate:"required"` // Format: YYYY-MM-DD
	RequestedTime       string   `json:"requested_time" validate:"required"` // Format: HH:MM
	DurationMinutes     int      `json:"duration_minutes" validate:"omitempty,min=15,max=720"`
	Pets                []string `json:"pets" validate:"omitempty,dive,min=1"`
	SpecialInstructions string   `json:"special_instructions" validate:"omitempty,max=1000"`
	Priority            int      `json:"priority" validate:"omitempty,min=0,max=100"` // Honored for admin callers only
	ClientPhone         string   `json:"client_phone" validate:"omitempty,min=10,max=20"`
}

// Response DTOs

type WaitlistEntryResponse struct {
	ID                  uuid.UUID `json:"id"`
	ClientID            uuid.UUID `json:"client_id"`
	ClientName          string    `json:"client_name"`
	ServiceType         string    `json:"service_type"`
	RequestedDate       string    `json:"requested_date"`
	RequestedTime       string    `json:"requested_time"`
	DurationMinutes     int       `json:"duration_minutes,omitempty"`
	Pets                []string  `json:"pets,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	Priority            int       `json:"priority"`
	EstimatedWaitHours  int       `json:"estimated_wait_hours,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type WaitlistListResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}
