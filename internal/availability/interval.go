package availability

import (
	"cmp"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DateRange is a range of calendar days. A nil End means open-ended.
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// TimeWindow is an intra-day range. A nil or invalid End means open-ended,
// a nil Start compares as midnight.
type TimeWindow struct {
	Start *types.TimeString
	End   *types.TimeString
}

// DateRangeOf returns the date range of a timeframe
func DateRangeOf(tf *domain.Timeframe) DateRange {
	r := DateRange{End: tf.EndDate}
	if tf.StartDate != nil {
		r.Start = *tf.StartDate
	}
	return r
}

// TimeWindowOf returns the daily time window of a timeframe
func TimeWindowOf(tf *domain.Timeframe) TimeWindow {
	return TimeWindow{Start: tf.StartTime, End: tf.EndTime}
}

// DateRangesOverlap reports whether two date ranges overlap.
//
// Boundaries are asymmetric: a range that starts on the last day of another
// counts as overlapping only when it is open-ended; two bounded ranges overlap only when
// an end date lies strictly inside the other range.
func DateRangesOverlap(a, b DateRange) bool {
	var aEnd, bEnd *int64
	if a.End != nil {
		aEnd = dayKey(*a.End)
	}
	if b.End != nil {
		bEnd = dayKey(*b.End)
	}
	return rangesOverlap(*dayKey(a.Start), aEnd, *dayKey(b.Start), bEnd)
}

// TimeRangesOverlap reports whether two daily time windows overlap, with the same
// boundary rules as DateRangesOverlap
func TimeRangesOverlap(a, b TimeWindow) bool {
	return rangesOverlap(startMinutes(a.Start), endMinutes(a.End), startMinutes(b.Start), endMinutes(b.End))
}

// rangesOverlap is the four-branch overlap rule shared by dates and times
func rangesOverlap[T cmp.Ordered](aStart T, aEnd *T, bStart T, bEnd *T) bool {
	switch {
	case aEnd == nil && bEnd == nil:
		return true
	case aEnd != nil && bEnd == nil:
		return bStart <= *aEnd && bStart >= aStart
	case aEnd == nil && bEnd != nil:
		return *bEnd > aStart
	default:
		return (*aEnd > bStart && *aEnd < *bEnd) ||
			(*bEnd > aStart && *bEnd < *aEnd)
	}
}

// dayKey maps a date to a comparable day number independent of time zone offsets
func dayKey(t time.Time) *int64 {
	y, m, d := t.Date()
	key := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return &key
}

func startMinutes(t *types.TimeString) int {
	if t == nil || !t.IsValid() {
		return 0
	}
	return t.Minutes()
}

func endMinutes(t *types.TimeString) *int {
	if t == nil || !t.IsValid() {
		return nil
	}
	m := t.Minutes()
	return &m
}
