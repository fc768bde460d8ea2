package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CancellationType selects whether a cancellation applies to a single visit
// or to every remaining visit in a recurring series
type CancellationType string

const (
	CancellationTypeSingle CancellationType = "single"
	CancellationTypeSeries CancellationType = "series"
)

// RescheduleRecord is one entry in a booking's reschedule history
type RescheduleRecord struct {
	OriginalDate time.Time `json:"original_date"`
	NewDate      time.Time `json:"new_date"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
	Actor        string    `json:"actor"`
}

// RescheduleHistory is an ordered JSONB array of reschedule records
type RescheduleHistory []RescheduleRecord

// Value implements driver.Valuer for JSONB storage
func (h RescheduleHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner
func (h *RescheduleHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var records []RescheduleRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return err
	}
	*h = RescheduleHistory(records)
	return nil
}

// Booking represents one scheduled service visit between a client and a sitter.
// Version increments on every committed mutation and backs the optimistic
// conditional updates in the repository layer.
type Booking struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	SitterID           *uuid.UUID        `gorm:"type:uuid;index" json:"sitter_id,omitempty"`
	ServiceType        string            `gorm:"type:varchar(100);not null" json:"service_type"`
	ScheduledAt        time.Time         `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes    int               `gorm:"not null" json:"duration_minutes"`
	Price              decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	Status             BookingStatus     `gorm:"type:booking_status;not null;default:'pending';index" json:"status"`
	RecurringSeriesID  *uuid.UUID        `gorm:"type:uuid;index" json:"recurring_series_id,omitempty"`
	VisitNumber        int               `gorm:"default:0" json:"visit_number"`
	IsRecurring        bool              `gorm:"not null;default:false" json:"is_recurring"`
	RescheduleHistory  RescheduleHistory `gorm:"type:jsonb" json:"reschedule_history,omitempty"`
	LastModified       time.Time         `gorm:"autoUpdateTime" json:"last_modified"`
	LastModifiedBy     string            `gorm:"type:varchar(255)" json:"last_modified_by,omitempty"`
	ModificationReason string            `gorm:"type:text" json:"modification_reason,omitempty"`
	Version            int64             `gorm:"not null;default:1" json:"version"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsCompleted checks if booking is completed
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}

// IsTerminal reports whether the booking admits no further changes.
// Cancelled and completed bookings can never be rescheduled or cancelled again.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// Duration returns the visit duration as a time.Duration
func (b *Booking) Duration() time.Duration {
	return time.Duration(b.DurationMinutes) * time.Minute
}

// Slot returns the half-open occupancy window of the visit
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{Start: b.ScheduledAt, End: b.ScheduledAt.Add(b.Duration())}
}

// RecordReschedule appends to the booking's reschedule history and moves the
// visit to the new time. Caller commits through the repository.
func (b *Booking) RecordReschedule(newTime time.Time, reason, actor string, at time.Time) {
	b.RescheduleHistory = append(b.RescheduleHistory, RescheduleRecord{
		OriginalDate: b.ScheduledAt,
		NewDate:      newTime,
		Reason:       reason,
		Timestamp:    at,
		Actor:        actor,
	})
	b.ScheduledAt = newTime
	b.LastModifiedBy = actor
	b.ModificationReason = reason
}
