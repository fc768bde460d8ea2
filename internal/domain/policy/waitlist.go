package policy

import (
	"sort"

	"pawcare-booking/internal/domain/entity"
)

// FreedSlot identifies a slot that became available, typically through a
// cancellation. Matching against waitlist requests is exact on service type,
// date and time.
type FreedSlot struct {
	ServiceType string
	Date        string
	Time        string
}

// RankBefore is the strict total order over waitlist entries: higher priority
// first, then earlier creation, then id. The id tiebreak guarantees no two
// distinct entries ever compare equal, so promotion is deterministic.
func RankBefore(a, b *entity.WaitlistEntry) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// RankWaitlist returns the entries in promotion order. The input slice is
// not modified.
func RankWaitlist(entries []entity.WaitlistEntry) []entity.WaitlistEntry {
	ranked := make([]entity.WaitlistEntry, len(entries))
	copy(ranked, entries)
	sort.Slice(ranked, func(i, j int) bool {
		return RankBefore(&ranked[i], &ranked[j])
	})
	return ranked
}

// SelectForPromotion picks the highest-ranked waiting entry whose request
// matches the freed slot. Returns nil when nothing matches; an empty match
// is a normal outcome, not a failure.
func SelectForPromotion(slot FreedSlot, entries []entity.WaitlistEntry) *entity.WaitlistEntry {
	var best *entity.WaitlistEntry
	for i := range entries {
		e := &entries[i]
		if !e.IsWaiting() || !matchesSlot(e, slot) {
			continue
		}
		if best == nil || RankBefore(e, best) {
			best = e
		}
	}
	return best
}

func matchesSlot(e *entity.WaitlistEntry, slot FreedSlot) bool {
	return e.ServiceType == slot.ServiceType &&
		e.RequestedDate == slot.Date &&
		e.RequestedTime == slot.Time
}
