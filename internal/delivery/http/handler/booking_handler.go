package handler

import (
	"encoding/json"
	"net/http"

	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/usecase"
	"pawcare-booking/pkg/response"
	"pawcare-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingChangeUsecase usecase.BookingChangeUsecase
	validator            *validator.CustomValidator
}

func NewBookingHandler(bookingChangeUsecase usecase.BookingChangeUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingChangeUsecase: bookingChangeUsecase,
		validator:            validator,
	}
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingChangeUsecase.GetMyBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// EvaluateCancellation returns the refund a cancellation would produce
// without committing it
func (h *BookingHandler) EvaluateCancellation(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.EvaluateCancellationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	eval, err := h.bookingChangeUsecase.EvaluateCancellation(r.Context(), bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err, "Failed to evaluate cancellation")
		return
	}

	response.Success(w, http.StatusOK, "Cancellation evaluated", eval)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingChangeUsecase.CancelBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err, "Failed to cancel booking")
		return
	}

	if !result.Cancelled {
		response.Error(w, http.StatusUnprocessableEntity, "Booking is not eligible for cancellation", result)
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", result)
}

// EvaluateReschedule returns eligibility and surcharge for a proposed new
// time without committing it
func (h *BookingHandler) EvaluateReschedule(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	eval, err := h.bookingChangeUsecase.EvaluateReschedule(r.Context(), bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err, "Failed to evaluate reschedule")
		return
	}

	response.Success(w, http.StatusOK, "Reschedule evaluated", eval)
}

func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingChangeUsecase.RescheduleBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.writeBookingError(w, err, "Failed to reschedule booking")
		return
	}

	if !result.Rescheduled {
		response.Error(w, http.StatusUnprocessableEntity, "Booking is not eligible for rescheduling", result)
		return
	}

	response.Success(w, http.StatusOK, "Booking rescheduled successfully", result)
}

func (h *BookingHandler) bookingIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return uuid.Nil, false
	}
	return bookingID, true
}

func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrBookingNotOwned:
		response.Forbidden(w, "Booking does not belong to you")
	case usecase.ErrInvalidTime:
		response.BadRequest(w, "Invalid time format, use RFC 3339")
	case usecase.ErrBookingConflict:
		response.Conflict(w, "Requested slot conflicts with an existing booking")
	case usecase.ErrConcurrentUpdate:
		response.Conflict(w, "Booking was modified concurrently, please retry")
	case usecase.ErrSlotContended:
		response.Conflict(w, "Another change for this slot is in progress, please retry")
	case usecase.ErrAvailabilityUnknown:
		response.Error(w, http.StatusServiceUnavailable, "Sitter availability could not be verified, try again", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
