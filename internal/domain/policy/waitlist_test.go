package policy_test

import (
	"testing"
	"time"

	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitingEntry(priority int, createdAt time.Time) entity.WaitlistEntry {
	return entity.WaitlistEntry{
		ID:            uuid.New(),
		ClientID:      uuid.New(),
		ClientName:    "Jamie",
		ClientEmail:   "jamie@example.com",
		ServiceType:   "dog-walk",
		RequestedDate: "2026-03-14",
		RequestedTime: "10:00",
		Priority:      priority,
		Status:        entity.WaitlistStatusWaiting,
		CreatedAt:     createdAt,
	}
}

func TestRankWaitlist_PriorityThenCreation(t *testing.T) {
	t0 := testNow.Add(-3 * time.Hour)
	t1 := testNow.Add(-2 * time.Hour)
	t2 := testNow.Add(-1 * time.Hour)

	entries := []entity.WaitlistEntry{
		waitingEntry(50, t1),
		waitingEntry(90, t2),
		waitingEntry(50, t0),
	}

	ranked := policy.RankWaitlist(entries)
	require.Len(t, ranked, 3)

	assert.Equal(t, 90, ranked[0].Priority)
	assert.Equal(t, 50, ranked[1].Priority)
	assert.True(t, ranked[1].CreatedAt.Equal(t0), "FCFS among equal priority")
	assert.True(t, ranked[2].CreatedAt.Equal(t1))

	// Input order untouched
	assert.Equal(t, 50, entries[0].Priority)
	assert.Equal(t, 90, entries[1].Priority)
}

func TestRankBefore_StrictTotalOrder(t *testing.T) {
	created := testNow.Add(-time.Hour)
	a := waitingEntry(10, created)
	b := waitingEntry(10, created)

	// Same priority and creation time: the id tiebreak still orders them
	assert.NotEqual(t, policy.RankBefore(&a, &b), policy.RankBefore(&b, &a))
	assert.False(t, policy.RankBefore(&a, &a))
}

func TestSelectForPromotion(t *testing.T) {
	slot := policy.FreedSlot{ServiceType: "dog-walk", Date: "2026-03-14", Time: "10:00"}

	t.Run("empty matching set is not an error", func(t *testing.T) {
		assert.Nil(t, policy.SelectForPromotion(slot, nil))

		other := waitingEntry(80, testNow)
		other.RequestedTime = "14:00"
		assert.Nil(t, policy.SelectForPromotion(slot, []entity.WaitlistEntry{other}))
	})

	t.Run("picks exactly the top ranked match", func(t *testing.T) {
		low := waitingEntry(10, testNow.Add(-4*time.Hour))
		high := waitingEntry(70, testNow.Add(-1*time.Hour))
		promoted := waitingEntry(99, testNow.Add(-6*time.Hour))
		promoted.Status = entity.WaitlistStatusPromoted
		wrongService := waitingEntry(99, testNow.Add(-5*time.Hour))
		wrongService.ServiceType = "overnight-stay"

		picked := policy.SelectForPromotion(slot, []entity.WaitlistEntry{low, high, promoted, wrongService})
		require.NotNil(t, picked)
		assert.Equal(t, high.ID, picked.ID)
	})
}
