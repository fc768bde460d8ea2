package usecase_test

import (
	"testing"
	"time"

	"pawcare-booking/internal/delivery/dto"
	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"
	"pawcare-booking/internal/domain/repository"
	"pawcare-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeWaitlistRepo struct {
	repository.WaitlistRepository
	entries        []entity.WaitlistEntry
	created        *entity.WaitlistEntry
	transitionRows int64
	transitions    []entity.WaitlistStatus
}

func (f *fakeWaitlistRepo) Create(_ *gorm.DB, entry *entity.WaitlistEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()
	f.created = entry
	return nil
}

func (f *fakeWaitlistRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.WaitlistEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			clone := f.entries[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeWaitlistRepo) FindWaiting(_ *gorm.DB) ([]entity.WaitlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWaitlistRepo) FindWaitingBySlot(_ *gorm.DB, _, _, _ string) ([]entity.WaitlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWaitlistRepo) TransitionIfWaiting(_ *gorm.DB, _ uuid.UUID, to entity.WaitlistStatus) (int64, error) {
	f.transitions = append(f.transitions, to)
	return f.transitionRows, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	user *entity.User
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, _ uuid.UUID) (*entity.User, error) {
	return f.user, nil
}

func waitingEntry(clientID uuid.UUID, priority int, createdAt time.Time) entity.WaitlistEntry {
	return entity.WaitlistEntry{
		ID:            uuid.New(),
		ClientID:      clientID,
		ClientName:    "Sam Doe",
		ServiceType:   "dog-walk",
		RequestedDate: "2026-09-05",
		RequestedTime: "09:00",
		Priority:      priority,
		Status:        entity.WaitlistStatusWaiting,
		CreatedAt:     createdAt,
	}
}

func newWaitlistUsecase(waitlistRepo *fakeWaitlistRepo, userRepo *fakeUserRepo) usecase.WaitlistUsecase {
	log := logrus.New()
	return usecase.NewWaitlistUsecase(testDB(), log, policy.Default(), waitlistRepo, &fakeBookingRepo{}, userRepo, &fakeAudit{})
}

func TestJoinWaitlist(t *testing.T) {
	clientID := uuid.New()
	user := &entity.User{ID: clientID, Email: "sam@example.com", FullName: "Sam Doe"}

	tests := []struct {
		name    string
		req     dto.JoinWaitlistRequest
		wantErr error
	}{
		{
			name: "valid request",
			req: dto.JoinWaitlistRequest{
				ServiceType:   "dog-walk",
				RequestedDate: "2026-09-05",
				RequestedTime: "09:00",
				Priority:      10,
			},
		},
		{
			name: "bad date format",
			req: dto.JoinWaitlistRequest{
				ServiceType:   "dog-walk",
				RequestedDate: "05/09/2026",
				RequestedTime: "09:00",
			},
			wantErr: usecase.ErrInvalidRequestedDate,
		},
		{
			name: "bad time format",
			req: dto.JoinWaitlistRequest{
				ServiceType:   "dog-walk",
				RequestedDate: "2026-09-05",
				RequestedTime: "9am",
			},
			wantErr: usecase.ErrInvalidRequestedTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWaitlistRepo{}
			uc := newWaitlistUsecase(repo, &fakeUserRepo{user: user})

			entry, err := uc.JoinWaitlist(authedContext(clientID), &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.created)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, clientID, entry.ClientID)
			// Contact details come from the user record, not the request
			assert.Equal(t, "Sam Doe", entry.ClientName)
			assert.Equal(t, string(entity.WaitlistStatusWaiting), entry.Status)
			assert.Greater(t, entry.EstimatedWaitHours, 0)
			require.NotNil(t, repo.created)
			assert.Equal(t, "sam@example.com", repo.created.ClientEmail)
		})
	}
}

func TestJoinWaitlist_PriorityIsAdminOnly(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "sam@example.com", FullName: "Sam Doe"}
	req := dto.JoinWaitlistRequest{
		ServiceType:   "dog-walk",
		RequestedDate: "2026-09-05",
		RequestedTime: "09:00",
		Priority:      95,
	}

	clientRepo := &fakeWaitlistRepo{}
	uc := newWaitlistUsecase(clientRepo, &fakeUserRepo{user: user})
	_, err := uc.JoinWaitlist(authedContext(userID), &req)
	require.NoError(t, err)
	assert.Zero(t, clientRepo.created.Priority)

	adminRepo := &fakeWaitlistRepo{}
	uc = newWaitlistUsecase(adminRepo, &fakeUserRepo{user: user})
	_, err = uc.JoinWaitlist(adminContext(userID), &req)
	require.NoError(t, err)
	assert.Equal(t, 95, adminRepo.created.Priority)
}

func TestJoinWaitlist_EstimateScalesWithQueuePosition(t *testing.T) {
	clientID := uuid.New()
	user := &entity.User{ID: clientID, Email: "sam@example.com", FullName: "Sam Doe"}

	// Two higher-priority entries already wait for the same slot
	repo := &fakeWaitlistRepo{entries: []entity.WaitlistEntry{
		waitingEntry(uuid.New(), 50, time.Now().UTC().Add(-time.Hour)),
		waitingEntry(uuid.New(), 50, time.Now().UTC()),
	}}
	uc := newWaitlistUsecase(repo, &fakeUserRepo{user: user})

	entry, err := uc.JoinWaitlist(authedContext(clientID), &dto.JoinWaitlistRequest{
		ServiceType:   "dog-walk",
		RequestedDate: "2026-09-05",
		RequestedTime: "09:00",
		Priority:      10,
	})
	require.NoError(t, err)

	// Third in line: one block of wait per position
	perPosition := int(policy.Default().QueuePositionWait.Hours())
	assert.Equal(t, 3*perPosition, entry.EstimatedWaitHours)
}

func TestRemoveFromWaitlist_Idempotent(t *testing.T) {
	clientID := uuid.New()
	entry := waitingEntry(clientID, 10, time.Now().UTC())
	entry.Status = entity.WaitlistStatusCancelled

	repo := &fakeWaitlistRepo{entries: []entity.WaitlistEntry{entry}}
	uc := newWaitlistUsecase(repo, &fakeUserRepo{})

	// Removing an already-cancelled entry succeeds without a state change
	err := uc.RemoveFromWaitlist(authedContext(clientID), entry.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.transitions)
}

func TestRemoveFromWaitlist_LostRaceIsStillSuccess(t *testing.T) {
	clientID := uuid.New()
	entry := waitingEntry(clientID, 10, time.Now().UTC())

	repo := &fakeWaitlistRepo{entries: []entity.WaitlistEntry{entry}, transitionRows: 0}
	uc := newWaitlistUsecase(repo, &fakeUserRepo{})

	err := uc.RemoveFromWaitlist(authedContext(clientID), entry.ID)
	assert.NoError(t, err)
}

func TestRemoveFromWaitlist_NotOwned(t *testing.T) {
	entry := waitingEntry(uuid.New(), 10, time.Now().UTC())
	repo := &fakeWaitlistRepo{entries: []entity.WaitlistEntry{entry}}
	uc := newWaitlistUsecase(repo, &fakeUserRepo{})

	err := uc.RemoveFromWaitlist(authedContext(uuid.New()), entry.ID)
	assert.ErrorIs(t, err, usecase.ErrWaitlistEntryNotOwned)
}

func TestGetRankedWaitlist_Order(t *testing.T) {
	now := time.Now().UTC()
	low := waitingEntry(uuid.New(), 10, now.Add(-2*time.Hour))
	highLate := waitingEntry(uuid.New(), 90, now)
	lowEarly := waitingEntry(uuid.New(), 10, now.Add(-4*time.Hour))

	repo := &fakeWaitlistRepo{entries: []entity.WaitlistEntry{low, highLate, lowEarly}}
	uc := newWaitlistUsecase(repo, &fakeUserRepo{})

	result, err := uc.GetRankedWaitlist(authedContext(uuid.New()))
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)

	// Priority first, then earlier join wins
	assert.Equal(t, highLate.ID, result.Entries[0].ID)
	assert.Equal(t, lowEarly.ID, result.Entries[1].ID)
	assert.Equal(t, low.ID, result.Entries[2].ID)
}
