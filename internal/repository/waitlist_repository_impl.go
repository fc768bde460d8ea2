package repository

import (
	"errors"

	"pawcare-booking/internal/domain/entity"
	domainRepo "pawcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type waitlistRepository struct{}

func NewWaitlistRepository() domainRepo.WaitlistRepository {
	return &waitlistRepository{}
}

func (r *waitlistRepository) Create(db *gorm.DB, entry *entity.WaitlistEntry) error {
	return db.Create(entry).Error
}

func (r *waitlistRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	err := db.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *waitlistRepository) FindWaiting(db *gorm.DB) ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	err := db.Where("status = ?", entity.WaitlistStatusWaiting).
		Order("priority DESC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *waitlistRepository) FindWaitingBySlot(db *gorm.DB, serviceType, date, timeOfDay string) ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	err := db.Where("status = ? AND service_type = ? AND requested_date = ? AND requested_time = ?",
		entity.WaitlistStatusWaiting, serviceType, date, timeOfDay).
		Order("priority DESC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TransitionIfWaiting moves an entry out of the waiting state only if it is
// still waiting. Returns affected rows: 0 means the entry was already
// terminal, which callers treat as an idempotent no-op.
func (r *waitlistRepository) TransitionIfWaiting(db *gorm.DB, id uuid.UUID, to entity.WaitlistStatus) (int64, error) {
	result := db.Model(&entity.WaitlistEntry{}).
		Where("id = ? AND status = ?", id, entity.WaitlistStatusWaiting).
		Update("status", to)
	return result.RowsAffected, result.Error
}
