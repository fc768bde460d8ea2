package converter

import (
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:                 booking.ID,
		ClientID:           booking.ClientID,
		SitterID:           booking.SitterID,
		ServiceType:        booking.ServiceType,
		ScheduledAt:        booking.ScheduledAt,
		DurationMinutes:    booking.DurationMinutes,
		Price:              booking.Price.StringFixed(2),
		Status:             string(booking.Status),
		RecurringSeriesID:  booking.RecurringSeriesID,
		VisitNumber:        booking.VisitNumber,
		IsRecurring:        booking.IsRecurring,
		RescheduleHistory:  rescheduleRecordsToResponses(booking.RescheduleHistory),
		ModificationReason: booking.ModificationReason,
		Version:            booking.Version,
		CreatedAt:          booking.CreatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

func rescheduleRecordsToResponses(records []entity.RescheduleRecord) []dto.RescheduleRecordResponse {
	if len(records) == 0 {
		return nil
	}
	responses := make([]dto.RescheduleRecordResponse, len(records))
	for i, r := range records {
		responses[i] = dto.RescheduleRecordResponse{
			OriginalDate: r.OriginalDate,
			NewDate:      r.NewDate,
			Reason:       r.Reason,
			Timestamp:    r.Timestamp,
			Actor:        r.Actor,
		}
	}
	return responses
}

// CancellationEvaluationToResponse converts a policy evaluation to its DTO
func CancellationEvaluationToResponse(bookingID uuid.UUID, eval *policy.CancellationEvaluation) *dto.CancellationEvaluationResponse {
	return &dto.CancellationEvaluationResponse{
		BookingID:    bookingID,
		Eligible:     eval.Eligible,
		Reasons:      eval.Reasons,
		RefundRate:   eval.RefundRate,
		RefundAmount: eval.RefundAmount.StringFixed(2),
	}
}

// SeriesCancellationsToResponses converts per-member series evaluations to DTOs
func SeriesCancellationsToResponses(evals []policy.SeriesCancellation) []dto.SeriesCancellationResponse {
	if len(evals) == 0 {
		return nil
	}
	responses := make([]dto.SeriesCancellationResponse, len(evals))
	for i, ev := range evals {
		responses[i] = dto.SeriesCancellationResponse{
			BookingID:    ev.BookingID,
			VisitNumber:  ev.VisitNumber,
			RefundRate:   ev.RefundRate,
			RefundAmount: ev.RefundAmount.StringFixed(2),
		}
	}
	return responses
}

// RescheduleEvaluationToResponse converts a policy evaluation to its DTO
func RescheduleEvaluationToResponse(bookingID uuid.UUID, eval *policy.RescheduleEvaluation) *dto.RescheduleEvaluationResponse {
	return &dto.RescheduleEvaluationResponse{
		BookingID: bookingID,
		Eligible:  eval.Eligible,
		Reasons:   eval.Reasons,
		Surcharge: eval.Surcharge.StringFixed(2),
	}
}
