package converter

import (
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
)

// WaitlistEntryToResponse converts a WaitlistEntry entity to its DTO
func WaitlistEntryToResponse(entry *entity.WaitlistEntry) *dto.WaitlistEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.WaitlistEntryResponse{
		ID:                  entry.ID,
		ClientID:            entry.ClientID,
		ClientName:          entry.ClientName,
		ServiceType:         entry.ServiceType,
		RequestedDate:       entry.RequestedDate,
		RequestedTime:       entry.RequestedTime,
		DurationMinutes:     entry.DurationMinutes,
		Pets:                []string(entry.Pets),
		SpecialInstructions: entry.SpecialInstructions,
		Priority:            entry.Priority,
		EstimatedWaitHours:  entry.EstimatedWaitHours,
		Status:              string(entry.Status),
		CreatedAt:           entry.CreatedAt,
	}
}

// WaitlistEntriesToResponses converts a slice of entries to DTOs
func WaitlistEntriesToResponses(entries []entity.WaitlistEntry) []dto.WaitlistEntryResponse {
	responses := make([]dto.WaitlistEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *WaitlistEntryToResponse(&entries[i])
	}
	return responses
}
