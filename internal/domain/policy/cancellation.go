package policy

import (
	"time"

	"pawcare-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refund brackets by notice period. Boundaries are inclusive lower bounds:
// exactly 24h of notice earns the full refund, exactly 2h earns half.
const (
	fullRefundNotice = 24 * time.Hour
	halfRefundNotice = 2 * time.Hour
)

// CancellationEvaluation is the computed outcome of a cancellation request.
// Ineligibility is data, not an error: Reasons is non-empty iff Eligible is
// false, and nothing is committed until the caller asks the repository to.
type CancellationEvaluation struct {
	Eligible     bool
	Reasons      []string
	RefundRate   int64
	RefundAmount decimal.Decimal
}

// SeriesCancellation is the per-booking outcome of cancelling a recurring
// series. Each member booking gets its own refund computation from its own
// scheduled time.
type SeriesCancellation struct {
	BookingID    uuid.UUID
	VisitNumber  int
	RefundRate   int64
	RefundAmount decimal.Decimal
}

// RefundRate returns the refund percentage for the given notice period:
// 100 at 24h or more, 50 at 2h or more, 0 below that.
func (p Policy) RefundRate(notice time.Duration) int64 {
	switch {
	case notice >= fullRefundNotice:
		return 100
	case notice >= halfRefundNotice:
		return 50
	default:
		return 0
	}
}

// RefundAmount computes price * rate / 100 in exact decimal arithmetic.
func RefundAmount(price decimal.Decimal, rate int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(rate)).Shift(-2)
}

// EvaluateCancellation computes the refund for cancelling a single booking
// at the reference instant now. Terminal bookings are ineligible.
func (p Policy) EvaluateCancellation(b *entity.Booking, now time.Time) CancellationEvaluation {
	if b.IsTerminal() {
		return CancellationEvaluation{
			Reasons:      []string{terminalReason(b)},
			RefundAmount: decimal.Zero,
		}
	}

	rate := p.RefundRate(b.ScheduledAt.Sub(now))
	return CancellationEvaluation{
		Eligible:     true,
		RefundRate:   rate,
		RefundAmount: RefundAmount(b.Price, rate),
	}
}

// ValidateCancellationType checks that the requested cancellation scope is
// permitted for the booking. Series cancellation is only selectable on
// recurring bookings; it is never silently downgraded to a single
// cancellation.
func ValidateCancellationType(b *entity.Booking, ct entity.CancellationType) []string {
	switch ct {
	case entity.CancellationTypeSingle:
		return nil
	case entity.CancellationTypeSeries:
		if !b.IsRecurring || b.RecurringSeriesID == nil {
			return []string{"series cancellation requires a recurring booking"}
		}
		return nil
	default:
		return []string{"unknown cancellation type"}
	}
}

// EvaluateSeriesCancellation computes per-booking refunds for every future,
// not-yet-completed member of a recurring series. Members already terminal
// or already started are skipped, not failed.
func (p Policy) EvaluateSeriesCancellation(members []entity.Booking, now time.Time) []SeriesCancellation {
	results := make([]SeriesCancellation, 0, len(members))
	for i := range members {
		b := &members[i]
		if b.IsTerminal() || !b.ScheduledAt.After(now) {
			continue
		}
		rate := p.RefundRate(b.ScheduledAt.Sub(now))
		results = append(results, SeriesCancellation{
			BookingID:    b.ID,
			VisitNumber:  b.VisitNumber,
			RefundRate:   rate,
			RefundAmount: RefundAmount(b.Price, rate),
		})
	}
	return results
}

func terminalReason(b *entity.Booking) string {
	if b.IsCancelled() {
		return "booking is already cancelled"
	}
	return "booking is already completed"
}
