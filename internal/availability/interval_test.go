package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func d(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func bounded(start, end int) DateRange {
	return DateRange{Start: d(start), End: ptr.Ptr(d(end))}
}

func openEnded(start int) DateRange {
	return DateRange{Start: d(start)}
}

func window(start, end string) TimeWindow {
	w := TimeWindow{}
	if start != "" {
		w.Start = ptr.Ptr(types.TimeString(start))
	}
	if end != "" {
		w.End = ptr.Ptr(types.TimeString(end))
	}
	return w
}

func TestDateRangesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{name: "disjoint", a: bounded(1, 5), b: bounded(10, 20), want: false},
		{name: "disjoint reversed", a: bounded(10, 20), b: bounded(1, 5), want: false},
		{name: "both open-ended", a: openEnded(1), b: openEnded(100), want: true},
		{name: "open-ended starts inside bounded", a: bounded(10, 20), b: openEnded(15), want: true},
		{name: "open-ended starts after bounded", a: bounded(10, 20), b: openEnded(25), want: false},
		{name: "open-ended starts before bounded", a: bounded(10, 20), b: openEnded(5), want: false},
		{name: "open-ended starts on last day", a: bounded(1, 10), b: openEnded(10), want: true},
		{name: "open-ended starts on first day", a: bounded(1, 10), b: openEnded(1), want: true},
		{name: "bounded ends after open-ended start", a: openEnded(10), b: bounded(1, 11), want: true},
		{name: "bounded ends on open-ended start", a: openEnded(10), b: bounded(1, 10), want: false},
		{name: "a ends inside b", a: bounded(1, 5), b: bounded(3, 8), want: true},
		{name: "b ends inside a", a: bounded(3, 8), b: bounded(1, 5), want: true},
		{name: "b nested in a", a: bounded(1, 20), b: bounded(5, 10), want: true},
		{name: "bounded touching on shared day", a: bounded(1, 10), b: bounded(10, 20), want: false},
		{name: "bounded touching reversed", a: bounded(10, 20), b: bounded(1, 10), want: false},
		{name: "bounded identical", a: bounded(1, 10), b: bounded(1, 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateRangesOverlap(tt.a, tt.b))
		})
	}
}

func TestDateRangesOverlap_DisjointIgnoresTimes(t *testing.T) {
	for gap := 1; gap < 30; gap++ {
		a := bounded(1, 5)
		b := bounded(5+gap, 5+gap+3)
		assert.False(t, DateRangesOverlap(a, b), "gap=%d", gap)
		assert.False(t, DateRangesOverlap(b, a), "gap=%d", gap)
	}
}

func TestDateRangesOverlap_IgnoresClockAndZone(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	a := DateRange{Start: time.Date(2025, 1, 1, 23, 0, 0, 0, berlin), End: ptr.Ptr(time.Date(2025, 1, 5, 1, 0, 0, 0, berlin))}
	b := DateRange{Start: time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC), End: ptr.Ptr(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))}
	assert.True(t, DateRangesOverlap(a, b))
}

func TestTimeRangesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    TimeWindow
		b    TimeWindow
		want bool
	}{
		{name: "no end times", a: window("", ""), b: window("", ""), want: true},
		{name: "morning and afternoon", a: window("08:00", "12:00"), b: window("13:00", "18:00"), want: false},
		{name: "adjacent windows", a: window("08:00", "12:00"), b: window("12:00", "18:00"), want: false},
		{name: "a ends inside b", a: window("08:00", "13:00"), b: window("12:00", "18:00"), want: true},
		{name: "b ends inside a", a: window("12:00", "18:00"), b: window("08:00", "13:00"), want: true},
		{name: "open b starts inside a", a: window("08:00", "12:00"), b: window("10:00", ""), want: true},
		{name: "open b starts at a end", a: window("08:00", "12:00"), b: window("12:00", ""), want: true},
		{name: "open b starts after a", a: window("08:00", "12:00"), b: window("14:00", ""), want: false},
		{name: "open a, b ends after a start", a: window("10:00", ""), b: window("08:00", "11:00"), want: true},
		{name: "open a, b ends before a start", a: window("10:00", ""), b: window("08:00", "09:00"), want: false},
		{name: "invalid end is open", a: window("08:00", "nope"), b: window("09:00", ""), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeRangesOverlap(tt.a, tt.b))
		})
	}
}
