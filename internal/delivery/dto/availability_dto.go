package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CheckSlotRequest struct {
	Start           string `json:"start" validate:"required"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=720"`
}

type DaySlotsRequest struct {
	Date            string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=720"`
}

// Response DTOs

type AvailabilityResponse struct {
	SitterID  uuid.UUID   `json:"sitter_id"`
	Start     time.Time   `json:"start"`
	Status    string      `json:"status"`
	Conflicts []uuid.UUID `json:"conflicts,omitempty"`
}

type TimeSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type DaySlotsResponse struct {
	SitterID uuid.UUID          `json:"sitter_id"`
	Date     string             `json:"date"`
	Slots    []TimeSlotResponse `json:"slots"`
}
