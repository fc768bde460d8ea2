package converter

import (
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to its DTO
func AuditLogToResponse(auditLog *entity.AuditLog) *dto.AuditLogResponse {
	if auditLog == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:           auditLog.ID,
		UserID:       auditLog.UserID,
		Action:       auditLog.Action,
		ResourceType: auditLog.ResourceType,
		ResourceID:   auditLog.ResourceID,
		Details:      map[string]interface{}(auditLog.Details),
		CreatedAt:    auditLog.CreatedAt,
	}
}

// AuditLogsToResponses converts a slice of AuditLog entities to DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
