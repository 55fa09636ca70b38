package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const daysPerWeek = 7

// Weeks splits [start, end] into weeks of seven days starting at start.
// The last week is padded past end; PaddedEnd returns its last day.
func Weeks(start, end time.Time) []domain.Week {
	start = domain.DateOnly(start)
	total := domain.DaysBetween(start, end) + 1
	if total < 1 {
		total = 1
	}

	weeks := make([]domain.Week, 0, (total+daysPerWeek-1)/daysPerWeek)
	for offset := 0; offset < total; offset += daysPerWeek {
		week := domain.Week{Days: make([]time.Time, 0, daysPerWeek)}
		for i := 0; i < daysPerWeek; i++ {
			week.Days = append(week.Days, start.AddDate(0, 0, offset+i))
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// PaddedEnd returns the last day covered by weeks, or the zero time if there are none
func PaddedEnd(weeks []domain.Week) time.Time {
	if len(weeks) == 0 {
		return time.Time{}
	}
	last := weeks[len(weeks)-1].Days
	return last[len(last)-1]
}
