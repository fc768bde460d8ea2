// Package policy holds the pure decision logic of the booking change engine:
// refund rates, reschedule eligibility and surcharges, and waitlist ordering.
// Nothing here performs I/O or mutates entities; every function is a total
// function over its inputs and safe to re-invoke on retry.
package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy carries the tunable parameters of the change engine.
// The zero value is not usable; construct via Default or from config.
type Policy struct {
	// BusinessHourStart and BusinessHourEnd bound the local hour-of-day
	// window for visits, inclusive on both ends.
	BusinessHourStart int
	BusinessHourEnd   int

	// MinNotice is the minimum lead time for a reschedule target.
	MinNotice time.Duration

	// MinShift is the minimum distance between the current visit time and
	// a reschedule target. Guards against no-op reschedules.
	MinShift time.Duration

	// LastMinuteWindow is the lead-time threshold under which the
	// last-minute surcharge applies.
	LastMinuteWindow time.Duration

	// LastMinuteFee and AfterHoursFee are additive reschedule surcharges.
	LastMinuteFee decimal.Decimal
	AfterHoursFee decimal.Decimal

	// SlotGranularity is the step between candidate slots offered to
	// clients, e.g. 30m for half-hour boundaries.
	SlotGranularity time.Duration

	// QueuePositionWait is the advisory wait attributed to each occupied
	// waitlist position when estimating how long a new entry will wait.
	QueuePositionWait time.Duration
}

// Default returns the marketplace's standard policy.
func Default() Policy {
	return Policy{
		BusinessHourStart: 8,
		BusinessHourEnd:   20,
		MinNotice:         2 * time.Hour,
		MinShift:          time.Hour,
		LastMinuteWindow:  24 * time.Hour,
		LastMinuteFee:     decimal.New(500, -2),
		AfterHoursFee:     decimal.New(1000, -2),
		SlotGranularity:   30 * time.Minute,
		QueuePositionWait: 24 * time.Hour,
	}
}

// WithinBusinessHours reports whether t's local hour-of-day falls inside the
// business window, inclusive on both ends.
func (p Policy) WithinBusinessHours(t time.Time) bool {
	hour := t.Hour()
	return hour >= p.BusinessHourStart && hour <= p.BusinessHourEnd
}
