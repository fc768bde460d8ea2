package usecase

import (
	"context"
	"errors"

	"pawcare-booking/internal/converter"
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error)
	GetAuditLogByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
	GetResourceHistory(ctx context.Context, resourceType, resourceID string) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAuditLogs(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to get audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLogByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to get audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

// GetResourceHistory returns the change trail of one resource, e.g. every
// reschedule and cancellation recorded against a booking
func (u *auditLogUsecase) GetResourceHistory(ctx context.Context, resourceType, resourceID string) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByResource(u.db.WithContext(ctx), resourceType, resourceID)
	if err != nil {
		u.log.Warnf("Failed to get history for %s %s: %+v", resourceType, resourceID, err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
