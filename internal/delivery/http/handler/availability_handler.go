package handler

import (
	"net/http"
	"strconv"

	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/usecase"
	"pawcare-booking/pkg/response"
	"pawcare-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.SitterAvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.SitterAvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// CheckSlot answers whether a sitter can take one candidate window.
// Query params: start (RFC 3339), duration_minutes.
func (h *AvailabilityHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	sitterID, ok := h.sitterIDFromPath(w, r)
	if !ok {
		return
	}

	req := dto.CheckSlotRequest{
		Start: r.URL.Query().Get("start"),
	}
	if raw := r.URL.Query().Get("duration_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "duration_minutes must be a number")
			return
		}
		req.DurationMinutes = minutes
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.CheckSlot(r.Context(), sitterID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to check slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot checked successfully", result)
}

// GetDaySlots lists the open windows for a sitter on one day.
// Query params: date (YYYY-MM-DD), duration_minutes.
func (h *AvailabilityHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	sitterID, ok := h.sitterIDFromPath(w, r)
	if !ok {
		return
	}

	req := dto.DaySlotsRequest{
		Date: r.URL.Query().Get("date"),
	}
	if raw := r.URL.Query().Get("duration_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "duration_minutes must be a number")
			return
		}
		req.DurationMinutes = minutes
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.availabilityUsecase.GetDaySlots(r.Context(), sitterID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to get day slots")
		return
	}

	response.Success(w, http.StatusOK, "Day slots retrieved successfully", slots)
}

func (h *AvailabilityHandler) sitterIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	sitterID, err := uuid.Parse(vars["sitterId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid sitter ID", nil)
		return uuid.Nil, false
	}
	return sitterID, true
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrSitterNotFound:
		response.NotFound(w, "Sitter not found")
	case usecase.ErrInvalidDate:
		response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
	case usecase.ErrInvalidStartTime:
		response.BadRequest(w, "Invalid start time, use RFC 3339")
	case usecase.ErrInvalidDuration:
		response.BadRequest(w, "duration_minutes must be positive")
	case usecase.ErrAvailabilityUnknown:
		response.Error(w, http.StatusServiceUnavailable, "Sitter availability could not be verified, try again", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
