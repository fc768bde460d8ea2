package repository

import (
	"errors"
	"time"

	"pawcare-booking/internal/domain/entity"
	domainRepo "pawcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("client_id = ?", clientID).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindBySitterAndWindow(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := db.Where("sitter_id = ?", filter.SitterID)

	if !filter.From.IsZero() {
		query = query.Where("scheduled_at + (duration_minutes * interval '1 minute') > ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("scheduled_at < ?", filter.To)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	err := query.Order("scheduled_at ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindFutureBySeries(db *gorm.DB, seriesID uuid.UUID, after time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("recurring_series_id = ? AND scheduled_at > ? AND status NOT IN ?",
		seriesID, after, []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled}).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelIfVersion cancels a booking only if the caller's snapshot is still
// current. Returns affected rows: 1 = success, 0 = version moved or booking
// already terminal (prevents double-cancel and lost-update races).
func (r *bookingRepository) CancelIfVersion(db *gorm.DB, id uuid.UUID, version int64, actor, reason string) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND version = ? AND status NOT IN ?",
			id, version, []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled}).
		Updates(map[string]interface{}{
			"status":              entity.BookingStatusCancelled,
			"last_modified_by":    actor,
			"modification_reason": reason,
			"version":             gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

// RescheduleIfVersion commits a reschedule with an optimistic version check.
// The booking must already carry the new time and history (see
// Booking.RecordReschedule); expectedVersion is the version of the snapshot
// the evaluation ran against. Returns affected rows like CancelIfVersion.
func (r *bookingRepository) RescheduleIfVersion(db *gorm.DB, booking *entity.Booking, expectedVersion int64) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND version = ? AND status NOT IN ?",
			booking.ID, expectedVersion, []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled}).
		Updates(map[string]interface{}{
			"scheduled_at":        booking.ScheduledAt,
			"reschedule_history":  booking.RescheduleHistory,
			"last_modified_by":    booking.LastModifiedBy,
			"modification_reason": booking.ModificationReason,
			"version":             gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}
