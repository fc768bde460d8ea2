package converter

import (
	"time"

	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/service"

	"github.com/google/uuid"
)

// AvailabilityResultToResponse converts a slot check result to its DTO
func AvailabilityResultToResponse(sitterID uuid.UUID, start time.Time, result *service.AvailabilityResult) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		SitterID:  sitterID,
		Start:     start,
		Status:    string(result.Status),
		Conflicts: result.Conflicts,
	}
}

// TimeSlotsToResponses converts time slots to DTOs
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.TimeSlotResponse{
			Start: slot.Start,
			End:   slot.End,
		}
	}
	return responses
}
