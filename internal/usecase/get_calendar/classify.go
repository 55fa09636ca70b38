package get_calendar

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// newCalendarResponse создает пустой ответ для диапазона
func newCalendarResponse(w window) *domain.CalendarResponse {
	return &domain.CalendarResponse{
		MinDate:                 w.start.Format(domain.DateFormat),
		StartDate:               w.start.Format(domain.DateFormat),
		EndDate:                 w.end.Format(domain.DateFormat),
		Days:                    make(map[string]domain.DayStatus),
		BookedDays:              []string{},
		PartiallyBookedDays:     []string{},
		LockDays:                []string{},
		Holidays:                []string{},
		DisallowLockDaysInRange: true,
		AdvanceBookingDays:      domain.DaysBetween(w.start, w.end) + 1,
	}
}

// addDay добавляет день в ответ и относит его не более чем к одной группе.
// Свободные дни есть только в Days.
func addDay(resp *domain.CalendarResponse, key string, agg availability.Aggregation) {
	resp.Days[key] = agg.Status

	if resp.MaxDays == nil && agg.MaxDays != nil {
		maxDays := *agg.MaxDays
		resp.MaxDays = &maxDays
	}

	if !agg.Status.Locked && !agg.AllLocked {
		return
	}

	switch {
	case !agg.AllLocked:
		resp.PartiallyBookedDays = append(resp.PartiallyBookedDays, key)
	case agg.Status.Holiday:
		resp.Holidays = append(resp.Holidays, key)
	case agg.Status.BookedDay || agg.Status.PartiallyBookedDay:
		resp.BookedDays = append(resp.BookedDays, key)
	default:
		resp.LockDays = append(resp.LockDays, key)
	}
}
