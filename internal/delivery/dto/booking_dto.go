package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type EvaluateCancellationRequest struct {
	CancellationType string `json:"cancellation_type" validate:"required,oneof=single series"`
}

type CancelBookingRequest struct {
	CancellationType string `json:"cancellation_type" validate:"required,oneof=single series"`
	Reason           string `json:"reason" validate:"omitempty,max=500"`
}

type RescheduleBookingRequest struct {
	NewTime string `json:"new_time" validate:"required"` // RFC 3339
	Reason  string `json:"reason" validate:"required,min=1,max=500"`
}

// Response DTOs

type BookingResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	ClientID           uuid.UUID                   `json:"client_id"`
	SitterID           *uuid.UUID                  `json:"sitter_id,omitempty"`
	ServiceType        string                      `json:"service_type"`
	ScheduledAt        time.Time                   `json:"scheduled_at"`
	DurationMinutes    int                         `json:"duration_minutes"`
	Price              string                      `json:"price"`
	Status             string                      `json:"status"`
	RecurringSeriesID  *uuid.UUID                  `json:"recurring_series_id,omitempty"`
	VisitNumber        int                         `json:"visit_number,omitempty"`
	IsRecurring        bool                        `json:"is_recurring"`
	RescheduleHistory  []RescheduleRecordResponse  `json:"reschedule_history,omitempty"`
	ModificationReason string                      `json:"modification_reason,omitempty"`
	Version            int64                       `json:"version"`
	CreatedAt          time.Time                   `json:"created_at"`
}

type RescheduleRecordResponse struct {
	OriginalDate time.Time `json:"original_date"`
	NewDate      time.Time `json:"new_date"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
	Actor        string    `json:"actor"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type CancellationEvaluationResponse struct {
	BookingID    uuid.UUID                    `json:"booking_id"`
	Eligible     bool                         `json:"eligible"`
	Reasons      []string                     `json:"reasons,omitempty"`
	RefundRate   int64                        `json:"refund_rate"`
	RefundAmount string                       `json:"refund_amount"`
	Series       []SeriesCancellationResponse `json:"series,omitempty"`
}

type SeriesCancellationResponse struct {
	BookingID    uuid.UUID `json:"booking_id"`
	VisitNumber  int       `json:"visit_number"`
	RefundRate   int64     `json:"refund_rate"`
	RefundAmount string    `json:"refund_amount"`
}

type CancelBookingResponse struct {
	BookingID    uuid.UUID                    `json:"booking_id"`
	Cancelled    bool                         `json:"cancelled"`
	Reasons      []string                     `json:"reasons,omitempty"`
	RefundRate   int64                        `json:"refund_rate,omitempty"`
	RefundAmount string                       `json:"refund_amount,omitempty"`
	Series       []SeriesCancellationResponse `json:"series,omitempty"`
}

type RescheduleEvaluationResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	Eligible  bool      `json:"eligible"`
	Reasons   []string  `json:"reasons,omitempty"`
	Surcharge string    `json:"surcharge"`
}

type RescheduleBookingResponse struct {
	BookingID   uuid.UUID        `json:"booking_id"`
	Rescheduled bool             `json:"rescheduled"`
	Reasons     []string         `json:"reasons,omitempty"`
	Surcharge   string           `json:"surcharge"`
	Booking     *BookingResponse `json:"booking,omitempty"`
}
