package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/delivery/http/middleware"
	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"
	"pawcare-booking/internal/domain/repository"
	"pawcare-booking/internal/service"
	"pawcare-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBookingRepo serves one booking and records conditional updates
type fakeBookingRepo struct {
	repository.BookingRepository
	booking *entity.Booking

	windowBookings []entity.Booking // sitter commitments seen by availability checks
	windowErr      error

	cancelRows     int64
	cancelCalls    int
	rescheduleRows []int64 // popped per call, lets a test lose the first race
	rescheduled    *entity.Booking
}

func (f *fakeBookingRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, nil
	}
	clone := *f.booking
	return &clone, nil
}

func (f *fakeBookingRepo) FindBySitterAndWindow(_ *gorm.DB, _ *entity.BookingFilter) ([]entity.Booking, error) {
	return f.windowBookings, f.windowErr
}

func (f *fakeBookingRepo) CancelIfVersion(_ *gorm.DB, _ uuid.UUID, _ int64, _, _ string) (int64, error) {
	f.cancelCalls++
	return f.cancelRows, nil
}

func (f *fakeBookingRepo) RescheduleIfVersion(_ *gorm.DB, booking *entity.Booking, _ int64) (int64, error) {
	rows := f.rescheduleRows[0]
	if len(f.rescheduleRows) > 1 {
		f.rescheduleRows = f.rescheduleRows[1:]
	}
	if rows > 0 {
		f.rescheduled = booking
	}
	return rows, nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ *uuid.UUID, action, _, _ string, _ entity.JSON) {
	f.actions = append(f.actions, action)
}

type fakeSlotLock struct {
	acquired int
	released int
}

func (f *fakeSlotLock) Acquire(_ context.Context, _ uuid.UUID, _ time.Time) (string, error) {
	f.acquired++
	return "lease-token", nil
}

func (f *fakeSlotLock) Release(_ context.Context, _ uuid.UUID, _ time.Time, _ string) {
	f.released++
}

type fakeWaitlist struct {
	usecase.WaitlistUsecase
	promotedFor []uuid.UUID
}

func (f *fakeWaitlist) PromoteForSlot(_ context.Context, freed *entity.Booking) (*entity.Booking, error) {
	f.promotedFor = append(f.promotedFor, freed.ID)
	return nil, nil
}

func testDB() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
}

func authedContext(userID uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDClient)
}

func adminContext(userID uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDAdmin)
}

func futureBooking(clientID uuid.UUID, lead time.Duration) *entity.Booking {
	return &entity.Booking{
		ID:              uuid.New(),
		ClientID:        clientID,
		ServiceType:     "dog-walk",
		ScheduledAt:     time.Now().UTC().Add(lead).Truncate(time.Minute),
		DurationMinutes: 60,
		Price:           decimal.RequireFromString("25.00"),
		Status:          entity.BookingStatusApproved,
		Version:         1,
	}
}

func newBookingChangeUsecase(repo *fakeBookingRepo, audit *fakeAudit, waitlist *fakeWaitlist) usecase.BookingChangeUsecase {
	log := logrus.New()
	p := policy.Default()
	availability := service.NewAvailabilityService(testDB(), log, repo, p)
	return usecase.NewBookingChangeUsecase(testDB(), log, p, repo, availability, &fakeSlotLock{}, audit, waitlist)
}

func TestCancelBooking_FullRefundAndPromotion(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking, cancelRows: 1}
	audit := &fakeAudit{}
	waitlist := &fakeWaitlist{}
	uc := newBookingChangeUsecase(repo, audit, waitlist)

	result, err := uc.CancelBooking(authedContext(clientID), booking.ID, &dto.CancelBookingRequest{
		CancellationType: "single",
		Reason:           "travel plans changed",
	})
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, int64(100), result.RefundRate)
	assert.Equal(t, "25.00", result.RefundAmount)
	assert.Equal(t, []string{entity.AuditActionBookingCancel}, audit.actions)
	assert.Equal(t, []uuid.UUID{booking.ID}, waitlist.promotedFor)
}

func TestCancelBooking_IneligibleDoesNotCommit(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	booking.Status = entity.BookingStatusCompleted
	repo := &fakeBookingRepo{booking: booking, cancelRows: 1}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	result, err := uc.CancelBooking(authedContext(clientID), booking.ID, &dto.CancelBookingRequest{
		CancellationType: "single",
	})
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.NotEmpty(t, result.Reasons)
	assert.Zero(t, repo.cancelCalls)
}

func TestCancelBooking_VersionRace(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking, cancelRows: 0}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.CancelBooking(authedContext(clientID), booking.ID, &dto.CancelBookingRequest{
		CancellationType: "single",
	})
	assert.ErrorIs(t, err, usecase.ErrConcurrentUpdate)
}

func TestCancelBooking_NotOwned(t *testing.T) {
	booking := futureBooking(uuid.New(), 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.CancelBooking(authedContext(uuid.New()), booking.ID, &dto.CancelBookingRequest{
		CancellationType: "single",
	})
	assert.ErrorIs(t, err, usecase.ErrBookingNotOwned)
}

func TestRescheduleBooking_CommitsAndRecordsHistory(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking, rescheduleRows: []int64{1}}
	audit := &fakeAudit{}
	uc := newBookingChangeUsecase(repo, audit, &fakeWaitlist{})

	// Noon the next day keeps the target inside business hours
	newTime := booking.ScheduledAt.AddDate(0, 0, 1)
	newTime = time.Date(newTime.Year(), newTime.Month(), newTime.Day(), 12, 0, 0, 0, time.UTC)

	result, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: newTime.Format(time.RFC3339),
		Reason:  "vet appointment moved",
	})
	require.NoError(t, err)
	assert.True(t, result.Rescheduled)
	require.NotNil(t, repo.rescheduled)
	assert.True(t, repo.rescheduled.ScheduledAt.Equal(newTime))
	require.Len(t, repo.rescheduled.RescheduleHistory, 1)
	assert.True(t, repo.rescheduled.RescheduleHistory[0].OriginalDate.Equal(booking.ScheduledAt))
	assert.Equal(t, []string{entity.AuditActionBookingReschedule}, audit.actions)
}

func TestRescheduleBooking_IneligibleReturnsAllReasons(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 30*time.Minute) // under minimum notice
	repo := &fakeBookingRepo{booking: booking, rescheduleRows: []int64{1}}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	// Target at 23:00 also lands outside business hours
	newTime := booking.ScheduledAt.AddDate(0, 0, 1)
	newTime = time.Date(newTime.Year(), newTime.Month(), newTime.Day(), 23, 0, 0, 0, time.UTC)

	result, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: newTime.Format(time.RFC3339),
		Reason:  "",
	})
	require.NoError(t, err)
	assert.False(t, result.Rescheduled)
	assert.GreaterOrEqual(t, len(result.Reasons), 2)
	assert.Nil(t, repo.rescheduled)
}

func TestRescheduleBooking_RetriesAfterLostVersionRace(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking, rescheduleRows: []int64{0, 1}}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	newTime := booking.ScheduledAt.AddDate(0, 0, 1)
	newTime = time.Date(newTime.Year(), newTime.Month(), newTime.Day(), 12, 0, 0, 0, time.UTC)

	result, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: newTime.Format(time.RFC3339),
		Reason:  "schedule clash",
	})
	require.NoError(t, err)
	assert.True(t, result.Rescheduled)
}

// sitterBooking is futureBooking with a sitter assigned, which makes the
// reschedule commit run the availability check.
func sitterBooking(clientID uuid.UUID, lead time.Duration) (*entity.Booking, uuid.UUID) {
	booking := futureBooking(clientID, lead)
	sitterID := uuid.New()
	booking.SitterID = &sitterID
	return booking, sitterID
}

func noonNextDay(after time.Time) time.Time {
	next := after.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 12, 0, 0, 0, time.UTC)
}

func TestRescheduleBooking_UnknownAvailabilityBlocksCommit(t *testing.T) {
	clientID := uuid.New()
	booking, _ := sitterBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{
		booking:        booking,
		windowErr:      errors.New("connection refused"),
		rescheduleRows: []int64{1},
	}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: noonNextDay(booking.ScheduledAt).Format(time.RFC3339),
		Reason:  "schedule clash",
	})
	assert.ErrorIs(t, err, usecase.ErrAvailabilityUnknown)
	assert.Nil(t, repo.rescheduled)
}

func TestRescheduleBooking_SitterConflictBlocksCommit(t *testing.T) {
	clientID := uuid.New()
	booking, sitterID := sitterBooking(clientID, 48*time.Hour)
	newTime := noonNextDay(booking.ScheduledAt)

	repo := &fakeBookingRepo{
		booking: booking,
		windowBookings: []entity.Booking{{
			ID:              uuid.New(),
			ClientID:        uuid.New(),
			SitterID:        &sitterID,
			ScheduledAt:     newTime.Add(30 * time.Minute),
			DurationMinutes: 60,
			Status:          entity.BookingStatusApproved,
		}},
		rescheduleRows: []int64{1},
	}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: newTime.Format(time.RFC3339),
		Reason:  "schedule clash",
	})
	assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	assert.Nil(t, repo.rescheduled)
}

func TestRescheduleBooking_OwnWindowIsNotAConflict(t *testing.T) {
	clientID := uuid.New()
	booking, _ := sitterBooking(clientID, 48*time.Hour)
	newTime := noonNextDay(booking.ScheduledAt)

	// The window query returns the booking's own current row overlapping
	// the target; only other bookings may block the move
	self := *booking
	self.ScheduledAt = newTime.Add(-30 * time.Minute)
	repo := &fakeBookingRepo{
		booking:        booking,
		windowBookings: []entity.Booking{self},
		rescheduleRows: []int64{1},
	}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	result, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: newTime.Format(time.RFC3339),
		Reason:  "schedule clash",
	})
	require.NoError(t, err)
	assert.True(t, result.Rescheduled)
	require.NotNil(t, repo.rescheduled)
	assert.True(t, repo.rescheduled.ScheduledAt.Equal(newTime))
}

func TestRescheduleBooking_InvalidTime(t *testing.T) {
	clientID := uuid.New()
	booking := futureBooking(clientID, 48*time.Hour)
	repo := &fakeBookingRepo{booking: booking}
	uc := newBookingChangeUsecase(repo, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.RescheduleBooking(authedContext(clientID), booking.ID, &dto.RescheduleBookingRequest{
		NewTime: "tomorrow noon",
		Reason:  "schedule clash",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidTime)
}

func TestGetMyBookings_RequiresIdentity(t *testing.T) {
	uc := newBookingChangeUsecase(&fakeBookingRepo{}, &fakeAudit{}, &fakeWaitlist{})

	_, err := uc.GetMyBookings(context.Background())
	assert.Error(t, err)
}
