package entity

import "time"

// TimeSlot is an immutable half-open interval [Start, End).
// Two slots that merely touch (one ends exactly when the other begins)
// do not overlap: a 10:00-10:30 walk and a back-to-back 10:30 walk are
// compatible commitments for the same sitter.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeSlot builds a slot from a start instant and a duration
func NewTimeSlot(start time.Time, duration time.Duration) TimeSlot {
	return TimeSlot{Start: start, End: start.Add(duration)}
}

// Overlaps reports whether two half-open intervals share any sub-interval
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Contains reports whether t falls inside the slot
func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
