package policy_test

import (
	"testing"
	"time"

	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testBooking(scheduledAt time.Time, price string) *entity.Booking {
	return &entity.Booking{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		ServiceType: "dog-walk",
		ScheduledAt: scheduledAt,
		Price:       decimal.RequireFromString(price),
		Status:      entity.BookingStatusApproved,
	}
}

func TestRefundRate_Brackets(t *testing.T) {
	p := policy.Default()

	tests := []struct {
		name   string
		notice time.Duration
		want   int64
	}{
		{"well above 24h", 72 * time.Hour, 100},
		{"exactly 24h is full refund", 24 * time.Hour, 100},
		{"just under 24h", 24*time.Hour - time.Second, 50},
		{"mid bracket", 10 * time.Hour, 50},
		{"exactly 2h is half refund", 2 * time.Hour, 50},
		{"just under 2h", 2*time.Hour - time.Second, 0},
		{"no notice", 0, 0},
		{"already past", -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.RefundRate(tt.notice))
		})
	}
}

func TestRefundRate_Monotonic(t *testing.T) {
	p := policy.Default()

	prev := int64(-1)
	for notice := time.Duration(0); notice <= 48*time.Hour; notice += 15 * time.Minute {
		rate := p.RefundRate(notice)
		assert.GreaterOrEqual(t, rate, prev, "rate decreased at notice %s", notice)
		assert.Contains(t, []int64{0, 50, 100}, rate)
		prev = rate
	}
}

func TestEvaluateCancellation_RefundAmountExact(t *testing.T) {
	p := policy.Default()

	// 50% bracket: $25.00 -> $12.50 with no floating point drift
	b := testBooking(testNow.Add(10*time.Hour), "25.00")
	eval := p.EvaluateCancellation(b, testNow)

	require.True(t, eval.Eligible)
	assert.Equal(t, int64(50), eval.RefundRate)
	assert.True(t, eval.RefundAmount.Equal(decimal.RequireFromString("12.50")),
		"got %s", eval.RefundAmount)

	// Survives a serialization round trip
	reparsed := decimal.RequireFromString(eval.RefundAmount.String())
	assert.True(t, reparsed.Equal(decimal.RequireFromString("12.50")))
}

func TestEvaluateCancellation_TerminalBookings(t *testing.T) {
	p := policy.Default()

	for _, status := range []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusCompleted} {
		b := testBooking(testNow.Add(48*time.Hour), "30.00")
		b.Status = status

		eval := p.EvaluateCancellation(b, testNow)
		assert.False(t, eval.Eligible, "status %s", status)
		assert.NotEmpty(t, eval.Reasons)
		assert.True(t, eval.RefundAmount.IsZero())
	}
}

func TestValidateCancellationType(t *testing.T) {
	single := testBooking(testNow.Add(48*time.Hour), "30.00")

	recurring := testBooking(testNow.Add(48*time.Hour), "30.00")
	recurring.IsRecurring = true
	seriesID := uuid.New()
	recurring.RecurringSeriesID = &seriesID

	assert.Empty(t, policy.ValidateCancellationType(single, entity.CancellationTypeSingle))
	assert.Empty(t, policy.ValidateCancellationType(recurring, entity.CancellationTypeSeries))

	// Series cancellation of a non-recurring booking is rejected outright,
	// never reinterpreted as a single cancellation.
	reasons := policy.ValidateCancellationType(single, entity.CancellationTypeSeries)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "recurring")
}

func TestEvaluateSeriesCancellation(t *testing.T) {
	p := policy.Default()
	seriesID := uuid.New()

	member := func(visit int, at time.Time, status entity.BookingStatus) entity.Booking {
		b := testBooking(at, "20.00")
		b.Status = status
		b.IsRecurring = true
		b.RecurringSeriesID = &seriesID
		b.VisitNumber = visit
		return *b
	}

	members := []entity.Booking{
		member(1, testNow.Add(-24*time.Hour), entity.BookingStatusCompleted), // past, skipped
		member(2, testNow.Add(1*time.Hour), entity.BookingStatusApproved),    // <2h notice
		member(3, testNow.Add(12*time.Hour), entity.BookingStatusApproved),   // 50%
		member(4, testNow.Add(7*24*time.Hour), entity.BookingStatusApproved), // 100%
		member(5, testNow.Add(14*24*time.Hour), entity.BookingStatusCancelled),
	}

	results := p.EvaluateSeriesCancellation(members, testNow)
	require.Len(t, results, 3)

	assert.Equal(t, int64(0), results[0].RefundRate)
	assert.Equal(t, int64(50), results[1].RefundRate)
	assert.True(t, results[1].RefundAmount.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, int64(100), results[2].RefundRate)
	assert.True(t, results[2].RefundAmount.Equal(decimal.RequireFromString("20.00")))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "25.00", "25.00", false},
		{"whitespace", "  12.50 ", "12.50", false},
		{"integer", "40", "40", false},
		{"empty is an integrity error, not zero", "", "", true},
		{"garbage", "free", "", true},
		{"negative", "-5.00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.ParsePrice(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, policy.ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}
