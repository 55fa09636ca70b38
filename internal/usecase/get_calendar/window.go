package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// window диапазон дней календаря
type window struct {
	start time.Time
	end   time.Time
}

// latestStart выбирает bookable таймфрейм с самой поздней датой начала.
// При равенстве побеждает последний в списке.
func latestStart(timeframes []*domain.Timeframe) *domain.Timeframe {
	var latest *domain.Timeframe
	for _, tf := range timeframes {
		if tf == nil || tf.StartDate == nil {
			continue
		}
		if latest == nil || !tf.StartDate.Before(*latest.StartDate) {
			latest = tf
		}
	}
	return latest
}

// resolveWindow определяет диапазон календаря.
// Заданные границы не меняются; недостающие выводятся из таймфрейма first:
// начало - его дата начала (не раньше today), конец - начало плюс его горизонт бронирования.
// Без таймфрейма начало - today, горизонт - значение по умолчанию.
func resolveWindow(start, end *time.Time, today time.Time, first *domain.Timeframe) window {
	today = domain.DateOnly(today)
	advance := domain.DefaultMaxAdvanceBookingDays
	derivedStart := today
	if first != nil {
		advance = first.AdvanceBookingDays()
		if first.StartDate != nil && domain.DaysBetween(today, *first.StartDate) > 0 {
			y, m, d := first.StartDate.Date()
			derivedStart = time.Date(y, m, d, 0, 0, 0, 0, today.Location())
		}
	}

	w := window{start: derivedStart}
	if start != nil {
		w.start = domain.DateOnly(*start)
	}

	w.end = w.start.AddDate(0, 0, advance)
	if end != nil {
		w.end = domain.DateOnly(*end)
	}

	return w
}
