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
	ErrWaitlistEntryNotFound = errors.New("waitlist entry not found")
	ErrWaitlistEntryNotOwned = errors.New("waitlist entry does not belong to you")
	ErrInvalidRequestedDate  = errors.New("invalid requested date, use YYYY-MM-DD")
	ErrInvalidRequestedTime  = errors.New("invalid requested time, use HH:MM")
)

type WaitlistUsecase interface {
	JoinWaitlist(ctx context.Context, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error)
	RemoveFromWaitlist(ctx context.Context, entryID uuid.UUID) error
	GetMyEntries(ctx context.Context) (*dto.WaitlistListResponse, error)
	GetRankedWaitlist(ctx context.Context) (*dto.WaitlistListResponse, error)

	// PromoteForSlot offers a freed booking's slot to the best-ranked waiting
	// entry. Returns the created booking, or nil when nobody matched.
	PromoteForSlot(ctx context.Context, freed *entity.Booking) (*entity.Booking, error)
}

type waitlistUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	policy       policy.Policy
	waitlistRepo repository.WaitlistRepository
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	audit        service.AuditService
}

func NewWaitlistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	p policy.Policy,
	waitlistRepo repository.WaitlistRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) WaitlistUsecase {
	return &waitlistUsecase{
		db:           db,
		log:          log,
		policy:       p,
		waitlistRepo: waitlistRepo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		audit:        audit,
	}
}

// JoinWaitlist puts the logged-in client on the waitlist for a slot that is
// currently full. Contact details are denormalized onto the entry so a
// promotion can notify without a join.
func (u *waitlistUsecase) JoinWaitlist(ctx context.Context, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if _, err := time.Parse("2006-01-02", req.RequestedDate); err != nil {
		return nil, ErrInvalidRequestedDate
	}
	if _, err := time.Parse("15:04", req.RequestedTime); err != nil {
		return nil, ErrInvalidRequestedTime
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	// Priority decides promotion order; only admins may assign it.
	// Client-submitted values are ignored, not rejected.
	priority := req.Priority
	if roleID, _ := middleware.GetRoleIDFromContext(ctx); roleID != entity.RoleIDAdmin {
		priority = 0
	}

	entry := &entity.WaitlistEntry{
		ClientID:            userID,
		ClientName:          user.FullName,
		ClientEmail:         user.Email,
		ClientPhone:         req.ClientPhone,
		ServiceType:         req.ServiceType,
		RequestedDate:       req.RequestedDate,
		RequestedTime:       req.RequestedTime,
		DurationMinutes:     req.DurationMinutes,
		Pets:                entity.PetNames(req.Pets),
		SpecialInstructions: req.SpecialInstructions,
		Priority:            priority,
		Status:              entity.WaitlistStatusWaiting,
	}
	entry.EstimatedWaitHours = u.estimateWait(ctx, entry)

	if err := u.waitlistRepo.Create(u.db.WithContext(ctx), entry); err != nil {
		u.log.Warnf("Failed to create waitlist entry: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &userID, entity.AuditActionWaitlistJoin, entity.AuditResourceWaitlist, entry.ID.String(), entity.JSON{
		"service_type":   entry.ServiceType,
		"requested_date": entry.RequestedDate,
		"requested_time": entry.RequestedTime,
		"priority":       entry.Priority,
	})

	u.log.Infof("Waitlist joined: entry=%s, slot=%s %s", entry.ID, entry.RequestedDate, entry.RequestedTime)
	return converter.WaitlistEntryToResponse(entry), nil
}

// RemoveFromWaitlist takes the client's entry off the waitlist. Removing an
// entry that already left the waiting state is a no-op, so retries and
// promotion races both land on the same answer.
func (u *waitlistUsecase) RemoveFromWaitlist(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	entry, err := u.waitlistRepo.FindByID(u.db.WithContext(ctx), entryID)
	if err != nil {
		u.log.Warnf("Failed to find waitlist entry %s: %+v", entryID, err)
		return err
	}
	if entry == nil {
		return ErrWaitlistEntryNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if entry.ClientID != userID && roleID != entity.RoleIDAdmin {
		return ErrWaitlistEntryNotOwned
	}

	if entry.IsTerminal() {
		return nil
	}

	rows, err := u.waitlistRepo.TransitionIfWaiting(u.db.WithContext(ctx), entryID, entity.WaitlistStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to remove waitlist entry %s: %+v", entryID, err)
		return err
	}
	if rows == 0 {
		// Lost a race with a promotion or another removal; both are terminal
		return nil
	}

	u.audit.Record(ctx, &userID, entity.AuditActionWaitlistRemove, entity.AuditResourceWaitlist, entryID.String(), nil)
	u.log.Infof("Waitlist entry removed: entry=%s", entryID)
	return nil
}

// GetMyEntries returns the client's own waitlist entries
func (u *waitlistUsecase) GetMyEntries(ctx context.Context) (*dto.WaitlistListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	entries, err := u.waitlistRepo.FindByClientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find waitlist entries for client %s: %+v", userID, err)
		return nil, err
	}

	return &dto.WaitlistListResponse{
		Entries: converter.WaitlistEntriesToResponses(entries),
		Total:   len(entries),
	}, nil
}

// GetRankedWaitlist returns every waiting entry in promotion order
func (u *waitlistUsecase) GetRankedWaitlist(ctx context.Context) (*dto.WaitlistListResponse, error) {
	entries, err := u.waitlistRepo.FindWaiting(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load waitlist: %+v", err)
		return nil, err
	}

	ranked := policy.RankWaitlist(entries)
	return &dto.WaitlistListResponse{
		Entries: converter.WaitlistEntriesToResponses(ranked),
		Total:   len(ranked),
	}, nil
}

// PromoteForSlot promotes the best-ranked waiting entry that matches the
// freed booking's slot. The promotion and the replacement booking are one
// transaction; the new booking inherits the freed booking's sitter, time and
// price since the entry itself carries neither.
func (u *waitlistUsecase) PromoteForSlot(ctx context.Context, freed *entity.Booking) (*entity.Booking, error) {
	slot := policy.FreedSlot{
		ServiceType: freed.ServiceType,
		Date:        freed.ScheduledAt.Format("2006-01-02"),
		Time:        freed.ScheduledAt.Format("15:04"),
	}

	candidates, err := u.waitlistRepo.FindWaitingBySlot(u.db.WithContext(ctx), slot.ServiceType, slot.Date, slot.Time)
	if err != nil {
		u.log.Warnf("Failed to load waitlist candidates for %s %s: %+v", slot.Date, slot.Time, err)
		return nil, err
	}

	chosen := policy.SelectForPromotion(slot, candidates)
	if chosen == nil {
		return nil, nil
	}

	duration := chosen.DurationMinutes
	if duration == 0 {
		duration = freed.DurationMinutes
	}

	booking := &entity.Booking{
		ClientID:        chosen.ClientID,
		SitterID:        freed.SitterID,
		ServiceType:     chosen.ServiceType,
		ScheduledAt:     freed.ScheduledAt,
		DurationMinutes: duration,
		Price:           freed.Price,
		Status:          entity.BookingStatusPending,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.waitlistRepo.TransitionIfWaiting(tx, chosen.ID, entity.WaitlistStatusPromoted)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Someone else promoted or cancelled the entry first
			return ErrWaitlistEntryNotFound
		}
		return u.bookingRepo.Create(tx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrWaitlistEntryNotFound) {
			return nil, nil
		}
		u.log.Warnf("Failed to promote waitlist entry %s: %+v", chosen.ID, err)
		return nil, err
	}

	u.audit.Record(ctx, nil, entity.AuditActionWaitlistPromote, entity.AuditResourceWaitlist, chosen.ID.String(), entity.JSON{
		"booking_id":   booking.ID.String(),
		"scheduled_at": booking.ScheduledAt,
		"client_id":    chosen.ClientID.String(),
	})

	u.log.Infof("Waitlist entry promoted: entry=%s, booking=%s", chosen.ID, booking.ID)
	return booking, nil
}

// estimateWait is advisory only: a rough figure from how many waiting entries
// would currently rank ahead of this one.
func (u *waitlistUsecase) estimateWait(ctx context.Context, entry *entity.WaitlistEntry) int {
	waiting, err := u.waitlistRepo.FindWaitingBySlot(u.db.WithContext(ctx), entry.ServiceType, entry.RequestedDate, entry.RequestedTime)
	if err != nil {
		u.log.Warnf("Failed to estimate wait: %+v", err)
		return 0
	}

	placed := *entry
	placed.ID = uuid.New()
	placed.CreatedAt = time.Now().UTC()

	ahead := 0
	for i := range waiting {
		if policy.RankBefore(&waiting[i], &placed) {
			ahead++
		}
	}
	return (ahead + 1) * int(u.policy.QueuePositionWait.Hours())
}
