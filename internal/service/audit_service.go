package service

import (
	"context"

	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records structured audit events. Recording is fire-and-forget:
// a failed write is logged and swallowed so it can never block or fail the
// business operation it describes.
type AuditService interface {
	Record(ctx context.Context, actorID *uuid.UUID, action, resourceType, resourceID string, details entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, actorID *uuid.UUID, action, resourceType, resourceID string, details entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:       actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s %s: %+v", resourceType, resourceID, err)
	}
}
