package usecase

import (
	"context"
	"errors"
	"time"

	"pawcare-booking/internal/converter"
	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/delivery/http/middleware"
	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"
	"pawcare-booking/internal/domain/repository"
	"pawcare-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotOwned     = errors.New("booking does not belong to you")
	ErrBookingConflict     = errors.New("requested slot conflicts with an existing booking")
	ErrAvailabilityUnknown = errors.New("sitter availability could not be verified, try again")
	ErrConcurrentUpdate    = errors.New("booking was modified concurrently, please retry")
	ErrSlotContended       = errors.New("another change for this slot is in progress")
	ErrInvalidTime         = errors.New("invalid time format, use RFC 3339")
)

// How many times a reschedule commit re-checks availability after losing an
// optimistic version race before giving up
const maxRescheduleAttempts = 3

type BookingChangeUsecase interface {
	GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error)
	EvaluateCancellation(ctx context.Context, bookingID uuid.UUID, req *dto.EvaluateCancellationRequest) (*dto.CancellationEvaluationResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error)
	EvaluateReschedule(ctx context.Context, bookingID uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.RescheduleEvaluationResponse, error)
	RescheduleBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.RescheduleBookingResponse, error)
}

type bookingChangeUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	policy       policy.Policy
	bookingRepo  repository.BookingRepository
	availability *service.AvailabilityService
	slotLock     service.SlotLockService
	audit        service.AuditService
	waitlist     WaitlistUsecase
}

func NewBookingChangeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	p policy.Policy,
	bookingRepo repository.BookingRepository,
	availability *service.AvailabilityService,
	slotLock service.SlotLockService,
	audit service.AuditService,
	waitlist WaitlistUsecase,
) BookingChangeUsecase {
	return &bookingChangeUsecase{
		db:           db,
		log:          log,
		policy:       p,
		bookingRepo:  bookingRepo,
		availability: availability,
		slotLock:     slotLock,
		audit:        audit,
		waitlist:     waitlist,
	}
}

// GetMyBookings returns all bookings for the logged-in client
func (u *bookingChangeUsecase) GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	bookings, err := u.bookingRepo.FindByClientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for client %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// EvaluateCancellation computes the refund for cancelling a booking without
// committing anything. The client sees the numbers before confirming.
func (u *bookingChangeUsecase) EvaluateCancellation(ctx context.Context, bookingID uuid.UUID, req *dto.EvaluateCancellationRequest) (*dto.CancellationEvaluationResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ctype := entity.CancellationType(req.CancellationType)

	eval := u.policy.EvaluateCancellation(booking, now)
	eval.Reasons = append(policy.ValidateCancellationType(booking, ctype), eval.Reasons...)
	if len(eval.Reasons) > 0 {
		eval.Eligible = false
	}

	resp := converter.CancellationEvaluationToResponse(bookingID, &eval)

	// A series evaluation additionally prices every future member
	if eval.Eligible && ctype == entity.CancellationTypeSeries {
		members, err := u.bookingRepo.FindFutureBySeries(u.db.WithContext(ctx), *booking.RecurringSeriesID, now)
		if err != nil {
			u.log.Warnf("Failed to load series %s: %+v", booking.RecurringSeriesID, err)
			return nil, err
		}
		resp.Series = converter.SeriesCancellationsToResponses(u.policy.EvaluateSeriesCancellation(members, now))
	}

	return resp, nil
}

// CancelBooking cancels a booking (or its whole remaining series) after
// re-running the evaluation. On success the freed slot is offered to the
// waitlist.
//
// Flow:
// 1. Find booking and verify ownership
// 2. Validate cancellation type and evaluate refund
// 3. Conditional cancel in DB (version check prevents double-cancel races)
// 4. Audit and try a waitlist promotion for the freed slot
func (u *bookingChangeUsecase) CancelBooking(ctx context.Context, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ctype := entity.CancellationType(req.CancellationType)

	eval := u.policy.EvaluateCancellation(booking, now)
	eval.Reasons = append(policy.ValidateCancellationType(booking, ctype), eval.Reasons...)
	if len(eval.Reasons) > 0 {
		// Ineligible requests are answered, not committed
		return &dto.CancelBookingResponse{
			BookingID: bookingID,
			Reasons:   eval.Reasons,
		}, nil
	}

	if ctype == entity.CancellationTypeSeries {
		return u.cancelSeries(ctx, booking, req.Reason, userID, now)
	}

	rows, err := u.bookingRepo.CancelIfVersion(u.db.WithContext(ctx), bookingID, booking.Version, userID.String(), req.Reason)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrConcurrentUpdate
	}

	u.audit.Record(ctx, &userID, entity.AuditActionBookingCancel, entity.AuditResourceBooking, bookingID.String(), entity.JSON{
		"reason":        req.Reason,
		"refund_rate":   eval.RefundRate,
		"refund_amount": eval.RefundAmount.String(),
	})

	u.promoteIntoFreedSlot(ctx, booking)

	u.log.Infof("Booking cancelled: id=%s, refund_rate=%d", bookingID, eval.RefundRate)
	return &dto.CancelBookingResponse{
		BookingID:    bookingID,
		Cancelled:    true,
		RefundRate:   eval.RefundRate,
		RefundAmount: eval.RefundAmount.String(),
	}, nil
}

// cancelSeries cancels every future, not-yet-completed member of the
// booking's series. Each member keeps its own refund computed from its own
// visit time; members that lose a version race are skipped and logged.
func (u *bookingChangeUsecase) cancelSeries(ctx context.Context, booking *entity.Booking, reason string, userID uuid.UUID, now time.Time) (*dto.CancelBookingResponse, error) {
	members, err := u.bookingRepo.FindFutureBySeries(u.db.WithContext(ctx), *booking.RecurringSeriesID, now)
	if err != nil {
		u.log.Warnf("Failed to load series %s: %+v", booking.RecurringSeriesID, err)
		return nil, err
	}

	evals := u.policy.EvaluateSeriesCancellation(members, now)
	byID := make(map[uuid.UUID]entity.Booking, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	var cancelled []policy.SeriesCancellation
	for _, ev := range evals {
		member := byID[ev.BookingID]
		rows, err := u.bookingRepo.CancelIfVersion(u.db.WithContext(ctx), ev.BookingID, member.Version, userID.String(), reason)
		if err != nil {
			u.log.Warnf("Failed to cancel series member %s: %+v", ev.BookingID, err)
			return nil, err
		}
		if rows == 0 {
			u.log.Warnf("Series member %s changed concurrently, skipping", ev.BookingID)
			continue
		}
		cancelled = append(cancelled, ev)
		u.promoteIntoFreedSlot(ctx, &member)
	}

	u.audit.Record(ctx, &userID, entity.AuditActionSeriesCancel, entity.AuditResourceBooking, booking.ID.String(), entity.JSON{
		"reason":          reason,
		"series_id":       booking.RecurringSeriesID.String(),
		"cancelled_count": len(cancelled),
	})

	u.log.Infof("Series cancelled: series=%s, members=%d", booking.RecurringSeriesID, len(cancelled))
	return &dto.CancelBookingResponse{
		BookingID: booking.ID,
		Cancelled: true,
		Series:    converter.SeriesCancellationsToResponses(cancelled),
	}, nil
}

// EvaluateReschedule computes eligibility and surcharge for a proposed new
// time without committing anything.
func (u *bookingChangeUsecase) EvaluateReschedule(ctx context.Context, bookingID uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.RescheduleEvaluationResponse, error) {
	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	proposed, err := time.Parse(time.RFC3339, req.NewTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	eval := u.policy.EvaluateReschedule(booking, proposed, req.Reason, time.Now().UTC())
	return converter.RescheduleEvaluationToResponse(bookingID, &eval), nil
}

// RescheduleBooking moves a booking to a new time.
//
// Flow:
// 1. Find booking and verify ownership
// 2. Policy evaluation (notice, shift, business hours, reason, status)
// 3. Take the Redis slot lease for the sitter window
// 4. Availability check, then optimistic conditional commit; on a lost
//    version race the availability check re-runs against fresh data
// 5. Audit with the reschedule record
func (u *bookingChangeUsecase) RescheduleBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.RescheduleBookingResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	booking, err := u.findOwnedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	proposed, err := time.Parse(time.RFC3339, req.NewTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	now := time.Now().UTC()
	eval := u.policy.EvaluateReschedule(booking, proposed, req.Reason, now)
	if !eval.Eligible {
		return &dto.RescheduleBookingResponse{
			BookingID: bookingID,
			Reasons:   eval.Reasons,
			Surcharge: eval.Surcharge.String(),
		}, nil
	}

	if booking.SitterID != nil {
		token, err := u.slotLock.Acquire(ctx, *booking.SitterID, proposed)
		if err != nil {
			if errors.Is(err, service.ErrSlotLocked) {
				return nil, ErrSlotContended
			}
			return nil, err
		}
		defer u.slotLock.Release(ctx, *booking.SitterID, proposed, token)
	}

	committed, err := u.commitReschedule(ctx, booking, proposed, req.Reason, userID, now)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, &userID, entity.AuditActionBookingReschedule, entity.AuditResourceBooking, bookingID.String(), entity.JSON{
		"original_date": committed.RescheduleHistory[len(committed.RescheduleHistory)-1].OriginalDate,
		"new_date":      proposed,
		"reason":        req.Reason,
		"surcharge":     eval.Surcharge.String(),
	})

	u.log.Infof("Booking rescheduled: id=%s, new_time=%s, surcharge=%s", bookingID, proposed, eval.Surcharge)
	return &dto.RescheduleBookingResponse{
		BookingID:   bookingID,
		Rescheduled: true,
		Surcharge:   eval.Surcharge.String(),
		Booking:     converter.BookingToResponse(committed),
	}, nil
}

// commitReschedule runs the check-then-commit loop. The availability check
// and the version snapshot always come from the same read, so a commit only
// succeeds if nothing changed in between.
func (u *bookingChangeUsecase) commitReschedule(ctx context.Context, booking *entity.Booking, proposed time.Time, reason string, userID uuid.UUID, now time.Time) (*entity.Booking, error) {
	for attempt := 0; attempt < maxRescheduleAttempts; attempt++ {
		if booking.SitterID != nil {
			result := u.availability.Check(ctx, *booking.SitterID, proposed, booking.Duration())
			switch result.Status {
			case service.AvailabilityUnknown:
				// Blocking for a commit: never confirm into the dark
				return nil, ErrAvailabilityUnknown
			case service.AvailabilityConflict:
				if conflictsBesides(result.Conflicts, booking.ID) {
					return nil, ErrBookingConflict
				}
			}
		}

		snapshotVersion := booking.Version
		updated := *booking
		updated.RecordReschedule(proposed, reason, userID.String(), now)

		rows, err := u.bookingRepo.RescheduleIfVersion(u.db.WithContext(ctx), &updated, snapshotVersion)
		if err != nil {
			u.log.Warnf("Failed to commit reschedule for %s: %+v", booking.ID, err)
			return nil, err
		}
		if rows > 0 {
			updated.Version = snapshotVersion + 1
			return &updated, nil
		}

		// Lost the version race: reload and re-check against fresh state
		fresh, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, ErrBookingNotFound
		}
		if fresh.IsTerminal() {
			return nil, ErrConcurrentUpdate
		}
		booking = fresh
	}

	return nil, ErrConcurrentUpdate
}

// promoteIntoFreedSlot offers a cancelled booking's slot to the waitlist.
// Best effort: promotion failures are logged, never surfaced to the caller
// whose cancellation already committed.
func (u *bookingChangeUsecase) promoteIntoFreedSlot(ctx context.Context, freed *entity.Booking) {
	promoted, err := u.waitlist.PromoteForSlot(ctx, freed)
	if err != nil {
		u.log.Warnf("Waitlist promotion for freed slot of booking %s failed: %+v", freed.ID, err)
		return
	}
	if promoted != nil {
		u.log.Infof("Waitlist entry %s promoted into freed slot of booking %s", promoted.ID, freed.ID)
	}
}

func (u *bookingChangeUsecase) findOwnedBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if booking.ClientID != userID && roleID != entity.RoleIDAdmin {
		return nil, ErrBookingNotOwned
	}

	return booking, nil
}

func conflictsBesides(conflicts []uuid.UUID, self uuid.UUID) bool {
	for _, id := range conflicts {
		if id != self {
			return true
		}
	}
	return false
}
