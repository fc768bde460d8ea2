package repository

import (
	"time"

	"pawcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error)
	FindBySitterAndWindow(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error)
	FindFutureBySeries(db *gorm.DB, seriesID uuid.UUID, after time.Time) ([]entity.Booking, error)
	CancelIfVersion(db *gorm.DB, id uuid.UUID, version int64, actor, reason string) (int64, error)
	RescheduleIfVersion(db *gorm.DB, booking *entity.Booking, expectedVersion int64) (int64, error)
}
