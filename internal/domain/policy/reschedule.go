package policy

import (
	"fmt"
	"strings"
	"time"

	"pawcare-booking/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// RescheduleEvaluation is the computed outcome of a reschedule request.
// Surcharge is advisory pricing on top of the existing price; charging it is
// the payment collaborator's concern, not this package's.
type RescheduleEvaluation struct {
	Eligible  bool
	Reasons   []string
	Surcharge decimal.Decimal
}

// EvaluateReschedule checks whether the booking may move to proposed and
// computes the applicable surcharges. All preconditions are checked so the
// caller can surface every violation at once, not just the first.
func (p Policy) EvaluateReschedule(b *entity.Booking, proposed time.Time, reason string, now time.Time) RescheduleEvaluation {
	var reasons []string

	if b.IsTerminal() {
		reasons = append(reasons, terminalReason(b))
	}
	if proposed.Sub(now) < p.MinNotice {
		reasons = append(reasons, fmt.Sprintf("new time must be at least %s from now", formatDuration(p.MinNotice)))
	}
	if strings.TrimSpace(reason) == "" {
		reasons = append(reasons, "a reason is required")
	}
	if shift := absDuration(proposed.Sub(b.ScheduledAt)); shift <= p.MinShift {
		reasons = append(reasons, fmt.Sprintf("new time must differ from the current time by more than %s", formatDuration(p.MinShift)))
	}
	if !p.WithinBusinessHours(proposed) {
		reasons = append(reasons, fmt.Sprintf("new time must fall within business hours (%02d:00-%02d:59)", p.BusinessHourStart, p.BusinessHourEnd))
	}

	return RescheduleEvaluation{
		Eligible:  len(reasons) == 0,
		Reasons:   reasons,
		Surcharge: p.RescheduleSurcharge(proposed, now),
	}
}

// RescheduleSurcharge sums the additive fees for the proposed time: the
// last-minute fee under 24h of lead time, the after-hours fee outside the
// business window. Both can apply at once.
func (p Policy) RescheduleSurcharge(proposed time.Time, now time.Time) decimal.Decimal {
	surcharge := decimal.Zero
	if proposed.Sub(now) < p.LastMinuteWindow {
		surcharge = surcharge.Add(p.LastMinuteFee)
	}
	if !p.WithinBusinessHours(proposed) {
		surcharge = surcharge.Add(p.AfterHoursFee)
	}
	return surcharge
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func formatDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
