package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingFilter is a domain-level filter for querying bookings.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookingFilter struct {
	SitterID uuid.UUID
	From     time.Time
	To       time.Time
	Statuses []BookingStatus
}

// ActiveStatuses are the statuses that occupy a sitter's time.
// Cancelled bookings free their slot; completed ones are in the past.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusApproved}
}
