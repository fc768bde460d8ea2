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

type WaitlistHandler struct {
	waitlistUsecase usecase.WaitlistUsecase
	validator       *validator.CustomValidator
}

func NewWaitlistHandler(waitlistUsecase usecase.WaitlistUsecase, validator *validator.CustomValidator) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistUsecase: waitlistUsecase,
		validator:       validator,
	}
}

func (h *WaitlistHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	entry, err := h.waitlistUsecase.JoinWaitlist(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRequestedDate:
			response.BadRequest(w, "Invalid requested date, use YYYY-MM-DD")
		case usecase.ErrInvalidRequestedTime:
			response.BadRequest(w, "Invalid requested time, use HH:MM")
		default:
			response.InternalServerError(w, "Failed to join waitlist")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Joined waitlist successfully", entry)
}

func (h *WaitlistHandler) RemoveFromWaitlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid waitlist entry ID", nil)
		return
	}

	if err := h.waitlistUsecase.RemoveFromWaitlist(r.Context(), entryID); err != nil {
		switch err {
		case usecase.ErrWaitlistEntryNotFound:
			response.NotFound(w, "Waitlist entry not found")
		case usecase.ErrWaitlistEntryNotOwned:
			response.Forbidden(w, "Waitlist entry does not belong to you")
		default:
			response.InternalServerError(w, "Failed to remove waitlist entry")
		}
		return
	}

	response.Success(w, http.StatusOK, "Removed from waitlist successfully", nil)
}

func (h *WaitlistHandler) GetMyEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.waitlistUsecase.GetMyEntries(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get waitlist entries")
		return
	}

	response.Success(w, http.StatusOK, "Waitlist entries retrieved successfully", entries)
}

// GetRankedWaitlist lists every waiting entry in promotion order. Admin only.
func (h *WaitlistHandler) GetRankedWaitlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.waitlistUsecase.GetRankedWaitlist(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get waitlist")
		return
	}

	response.Success(w, http.StatusOK, "Waitlist retrieved successfully", entries)
}
