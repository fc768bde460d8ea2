package service

import (
	"context"
	"time"

	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"
	"pawcare-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AvailabilityStatus is the outcome of a slot check
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityConflict  AvailabilityStatus = "conflict"
	AvailabilityUnknown   AvailabilityStatus = "unknown"
)

// AvailabilityResult reports whether a sitter can take a candidate window.
// Unknown means the sitter's commitments could not be read; it is a distinct
// outcome from conflict, and callers must treat it as blocking when
// confirming a reschedule. Conflicts lists the bookings that collide.
type AvailabilityResult struct {
	Status    AvailabilityStatus `json:"status"`
	Conflicts []uuid.UUID        `json:"conflicts,omitempty"`
}

// AvailabilityService answers slot questions against a sitter's existing
// commitments. Conflict detection is exact half-open interval overlap:
// a visit ending at 10:30 never conflicts with one starting at 10:30.
type AvailabilityService struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	policy      policy.Policy
}

func NewAvailabilityService(db *gorm.DB, log *logrus.Logger, bookingRepo repository.BookingRepository, p policy.Policy) *AvailabilityService {
	return &AvailabilityService{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		policy:      p,
	}
}

// Check determines whether the sitter is free for [start, start+duration).
// A fetch failure yields Unknown, never a silent available.
func (s *AvailabilityService) Check(ctx context.Context, sitterID uuid.UUID, start time.Time, duration time.Duration) AvailabilityResult {
	candidate := entity.NewTimeSlot(start, duration)

	existing, err := s.bookingRepo.FindBySitterAndWindow(s.db.WithContext(ctx), &entity.BookingFilter{
		SitterID: sitterID,
		From:     candidate.Start,
		To:       candidate.End,
		Statuses: entity.ActiveStatuses(),
	})
	if err != nil {
		s.log.Warnf("Failed to load commitments for sitter %s: %+v", sitterID, err)
		return AvailabilityResult{Status: AvailabilityUnknown}
	}

	var conflicts []uuid.UUID
	for i := range existing {
		if candidate.Overlaps(existing[i].Slot()) {
			conflicts = append(conflicts, existing[i].ID)
		}
	}

	if len(conflicts) > 0 {
		return AvailabilityResult{Status: AvailabilityConflict, Conflicts: conflicts}
	}
	return AvailabilityResult{Status: AvailabilityAvailable}
}

// EnumerateSlots lists the candidate slots for a sitter on the given day:
// every window of the requested duration starting on a granularity boundary
// inside business hours that does not overlap an existing commitment.
// The fetch error is returned so callers can distinguish "no slots" from
// "could not look".
func (s *AvailabilityService) EnumerateSlots(ctx context.Context, sitterID uuid.UUID, date time.Time, duration time.Duration) ([]entity.TimeSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := s.bookingRepo.FindBySitterAndWindow(s.db.WithContext(ctx), &entity.BookingFilter{
		SitterID: sitterID,
		From:     dayStart,
		To:       dayEnd.Add(duration),
		Statuses: entity.ActiveStatuses(),
	})
	if err != nil {
		s.log.Warnf("Failed to load day commitments for sitter %s: %+v", sitterID, err)
		return nil, err
	}

	taken := make([]entity.TimeSlot, len(existing))
	for i := range existing {
		taken[i] = existing[i].Slot()
	}

	var free []entity.TimeSlot
	first := dayStart.Add(time.Duration(s.policy.BusinessHourStart) * time.Hour)
	for start := first; s.policy.WithinBusinessHours(start); start = start.Add(s.policy.SlotGranularity) {
		candidate := entity.NewTimeSlot(start, duration)
		if !s.hasConflict(candidate, taken) {
			free = append(free, candidate)
		}
	}
	return free, nil
}

func (s *AvailabilityService) hasConflict(candidate entity.TimeSlot, taken []entity.TimeSlot) bool {
	for _, slot := range taken {
		if candidate.Overlaps(slot) {
			return true
		}
	}
	return false
}
