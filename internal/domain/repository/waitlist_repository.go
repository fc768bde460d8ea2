package repository

import (
	"pawcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	Create(db *gorm.DB, entry *entity.WaitlistEntry) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.WaitlistEntry, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.WaitlistEntry, error)
	FindWaiting(db *gorm.DB) ([]entity.WaitlistEntry, error)
	FindWaitingBySlot(db *gorm.DB, serviceType, date, timeOfDay string) ([]entity.WaitlistEntry, error)
	TransitionIfWaiting(db *gorm.DB, id uuid.UUID, to entity.WaitlistStatus) (int64, error)
}
