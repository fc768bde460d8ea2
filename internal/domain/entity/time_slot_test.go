package entity_test

import (
	"testing"
	"time"

	"pawcare-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlotOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name string
		a    entity.TimeSlot
		b    entity.TimeSlot
		want bool
	}{
		{
			name: "back to back walks do not conflict",
			a:    entity.TimeSlot{Start: at(10, 0), End: at(10, 30)},
			b:    entity.TimeSlot{Start: at(10, 30), End: at(11, 0)},
			want: false,
		},
		{
			name: "partial overlap conflicts",
			a:    entity.TimeSlot{Start: at(10, 0), End: at(10, 45)},
			b:    entity.TimeSlot{Start: at(10, 30), End: at(11, 0)},
			want: true,
		},
		{
			name: "containment conflicts",
			a:    entity.TimeSlot{Start: at(9, 0), End: at(12, 0)},
			b:    entity.TimeSlot{Start: at(10, 0), End: at(10, 30)},
			want: true,
		},
		{
			name: "identical slots conflict",
			a:    entity.TimeSlot{Start: at(10, 0), End: at(10, 30)},
			b:    entity.TimeSlot{Start: at(10, 0), End: at(10, 30)},
			want: true,
		},
		{
			name: "disjoint slots",
			a:    entity.TimeSlot{Start: at(8, 0), End: at(9, 0)},
			b:    entity.TimeSlot{Start: at(14, 0), End: at(15, 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotContains(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	slot := entity.NewTimeSlot(start, 30*time.Minute)

	assert.True(t, slot.Contains(start))
	assert.True(t, slot.Contains(start.Add(29*time.Minute)))
	assert.False(t, slot.Contains(slot.End), "end is exclusive")
	assert.False(t, slot.Contains(start.Add(-time.Minute)))
}
