package get_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestLatestStart(t *testing.T) {
	early := &domain.Timeframe{ID: 1, StartDate: ptr.Ptr(date(6, 1))}
	late := &domain.Timeframe{ID: 2, StartDate: ptr.Ptr(date(6, 20))}
	sameLate := &domain.Timeframe{ID: 3, StartDate: ptr.Ptr(date(6, 20))}
	noStart := &domain.Timeframe{ID: 4}

	assert.Nil(t, latestStart(nil))
	assert.Equal(t, int64(2), latestStart([]*domain.Timeframe{early, late, noStart}).ID)
	assert.Equal(t, int64(3), latestStart([]*domain.Timeframe{early, late, sameLate}).ID)
}

func TestResolveWindow(t *testing.T) {
	today := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	future := &domain.Timeframe{StartDate: ptr.Ptr(date(6, 20)), MaxAdvanceBookingDays: ptr.Ptr(10)}
	past := &domain.Timeframe{StartDate: ptr.Ptr(date(5, 1))}

	tests := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		first     *domain.Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "defaults", wantStart: date(6, 2), wantEnd: date(6, 5)},
		{name: "future timeframe", first: future, wantStart: date(6, 20), wantEnd: date(6, 30)},
		{name: "started timeframe begins today", first: past, wantStart: date(6, 2), wantEnd: date(6, 5)},
		{name: "explicit start", start: ptr.Ptr(date(7, 1)), first: future, wantStart: date(7, 1), wantEnd: date(7, 11)},
		{name: "explicit end", end: ptr.Ptr(date(6, 25)), first: future, wantStart: date(6, 20), wantEnd: date(6, 25)},
		{name: "both explicit", start: ptr.Ptr(date(7, 1)), end: ptr.Ptr(date(7, 3)), first: future, wantStart: date(7, 1), wantEnd: date(7, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := resolveWindow(tt.start, tt.end, today, tt.first)
			assert.True(t, w.start.Equal(tt.wantStart), "start %s", w.start)
			assert.True(t, w.end.Equal(tt.wantEnd), "end %s", w.end)
		})
	}
}
