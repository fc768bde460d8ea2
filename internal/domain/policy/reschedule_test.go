package policy_test

import (
	"strings"
	"testing"
	"time"

	"pawcare-booking/internal/domain/entity"
	"pawcare-booking/internal/domain/policy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReschedule_Eligible(t *testing.T) {
	p := policy.Default()
	b := testBooking(testNow.Add(48*time.Hour), "25.00")

	// 3 days out at 10:00 local: plenty of notice, inside business hours
	proposed := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	eval := p.EvaluateReschedule(b, proposed, "sitter requested a swap", testNow)

	assert.True(t, eval.Eligible)
	assert.Empty(t, eval.Reasons)
	assert.True(t, eval.Surcharge.IsZero(), "got %s", eval.Surcharge)
}

func TestEvaluateReschedule_Ineligibility(t *testing.T) {
	p := policy.Default()

	tests := []struct {
		name     string
		booking  func() *entity.Booking
		proposed time.Time
		reason   string
		wantIn   string
	}{
		{
			name:     "under two hours of notice",
			booking:  func() *entity.Booking { return testBooking(testNow.Add(48*time.Hour), "25.00") },
			proposed: testNow.Add(90 * time.Minute),
			reason:   "emergency",
			wantIn:   "at least 2 hours",
		},
		{
			name:     "empty reason",
			booking:  func() *entity.Booking { return testBooking(testNow.Add(48*time.Hour), "25.00") },
			proposed: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
			reason:   "   ",
			wantIn:   "reason is required",
		},
		{
			name:     "outside business hours",
			booking:  func() *entity.Booking { return testBooking(testNow.Add(48*time.Hour), "25.00") },
			proposed: time.Date(2026, 3, 13, 6, 0, 0, 0, time.UTC),
			reason:   "early drop-off",
			wantIn:   "business hours",
		},
		{
			name: "cancelled booking",
			booking: func() *entity.Booking {
				b := testBooking(testNow.Add(48*time.Hour), "25.00")
				b.Status = entity.BookingStatusCancelled
				return b
			},
			proposed: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
			reason:   "retry",
			wantIn:   "already cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := p.EvaluateReschedule(tt.booking(), tt.proposed, tt.reason, testNow)
			assert.False(t, eval.Eligible)
			require.NotEmpty(t, eval.Reasons)
			found := false
			for _, r := range eval.Reasons {
				if strings.Contains(r, tt.wantIn) {
					found = true
				}
			}
			assert.True(t, found, "reasons %v missing %q", eval.Reasons, tt.wantIn)
		})
	}
}

// A target within one hour of the current visit time is never eligible,
// whatever the other fields look like.
func TestEvaluateReschedule_NoOpGuard(t *testing.T) {
	p := policy.Default()

	scheduled := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
	b := testBooking(scheduled, "25.00")

	for _, shift := range []time.Duration{0, 30 * time.Minute, time.Hour, -45 * time.Minute} {
		eval := p.EvaluateReschedule(b, scheduled.Add(shift), "move it slightly", testNow)
		assert.False(t, eval.Eligible, "shift %s should be rejected", shift)
	}

	// Just over one hour clears the guard
	eval := p.EvaluateReschedule(b, scheduled.Add(61*time.Minute), "move it", testNow)
	assert.True(t, eval.Eligible)
}

func TestRescheduleSurcharge(t *testing.T) {
	p := policy.Default()

	tests := []struct {
		name     string
		proposed time.Time
		want     string
	}{
		{"far out, in hours", time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC), "0"},
		{"last minute only", testNow.Add(5 * time.Hour), "5.00"},
		{"after hours only", time.Date(2026, 3, 20, 22, 0, 0, 0, time.UTC), "10.00"},
		{"both fees stack", testNow.Add(18 * time.Hour), "15.00"}, // 06:00 next day
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.RescheduleSurcharge(tt.proposed, testNow)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s got %s", tt.want, got)
		})
	}
}

func TestWithinBusinessHours_InclusiveBounds(t *testing.T) {
	p := policy.Default()

	day := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	assert.False(t, p.WithinBusinessHours(day.Add(7*time.Hour+59*time.Minute)))
	assert.True(t, p.WithinBusinessHours(day.Add(8*time.Hour)))
	assert.True(t, p.WithinBusinessHours(day.Add(20*time.Hour)))
	assert.True(t, p.WithinBusinessHours(day.Add(20*time.Hour+59*time.Minute)))
	assert.False(t, p.WithinBusinessHours(day.Add(21*time.Hour)))
}
