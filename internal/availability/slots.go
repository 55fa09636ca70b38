package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	cellMinutes  = 60
	cellsPerDay  = 24 * 60 / cellMinutes
	minutesInDay = 24 * 60
)

// ExpandSlots раскладывает таймфреймы по дням диапазона [start, end] и часовым ячейкам.
// Ячейку, на которую претендуют несколько таймфреймов, получает таймфрейм с большим приоритетом
// (Repair > Booking > Holiday > OffHoliday > Bookable), при равенстве - первый в списке.
// Таймфрейм с сеткой GridFullSlot дает один слот на непрерывный отрезок ячеек,
// с сеткой GridHourly - слот на каждый час. Ключ результата - дата в формате domain.DateFormat.
func ExpandSlots(timeframes []*domain.Timeframe, start, end time.Time) map[string][]domain.Slot {
	result := make(map[string][]domain.Slot)

	days := domain.DaysBetween(start, end)
	first := domain.DateOnly(start)
	for i := 0; i <= days; i++ {
		day := first.AddDate(0, 0, i)
		if slots := expandDay(timeframes, day); len(slots) > 0 {
			result[day.Format(domain.DateFormat)] = slots
		}
	}

	return result
}

// expandDay строит слоты одного дня
func expandDay(timeframes []*domain.Timeframe, day time.Time) []domain.Slot {
	var cells [cellsPerDay]*domain.Timeframe

	// Шаг 1: Заполняем ячейки таймфреймами, активными в этот день
	for _, tf := range timeframes {
		if !activeOn(tf, day) {
			continue
		}
		from, to := cellRange(tf)
		for c := from; c < to; c++ {
			if cells[c] == nil || tf.Kind.Priority() > cells[c].Kind.Priority() {
				cells[c] = tf
			}
		}
	}

	// Шаг 2: Собираем слоты по сетке владельца ячейки
	slots := make([]domain.Slot, 0)
	for c := 0; c < cellsPerDay; {
		owner := cells[c]
		if owner == nil {
			c++
			continue
		}

		next := c + 1
		if owner.Grid == domain.GridFullSlot {
			for next < cellsPerDay && cells[next] == owner {
				next++
			}
		}

		slots = append(slots, domain.Slot{
			Start:     cellTime(c),
			End:       cellTime(next),
			Timeframe: owner,
		})
		c = next
	}

	return slots
}

// activeOn сравнивает только календарные дни, без учета времени и часового пояса
func activeOn(tf *domain.Timeframe, day time.Time) bool {
	if tf.StartDate == nil || domain.DaysBetween(*tf.StartDate, day) < 0 {
		return false
	}
	return tf.EndDate == nil || domain.DaysBetween(day, *tf.EndDate) >= 0
}

// cellRange возвращает полуинтервал ячеек [from, to), занятых таймфреймом в течение дня
func cellRange(tf *domain.Timeframe) (int, int) {
	if tf.FullDay {
		return 0, cellsPerDay
	}

	from, to := 0, cellsPerDay
	if tf.HasStartTime() && tf.StartTime.IsValid() {
		from = tf.StartTime.Minutes() / cellMinutes
	}
	if tf.HasEndTime() && tf.EndTime.IsValid() {
		// Неполный час занимает ячейку целиком
		to = (tf.EndTime.Minutes() + cellMinutes - 1) / cellMinutes
	}
	if to > cellsPerDay {
		to = cellsPerDay
	}
	if to <= from {
		return 0, 0
	}
	return from, to
}

func cellTime(cell int) types.TimeString {
	minutes := cell * cellMinutes
	if minutes > minutesInDay {
		minutes = minutesInDay
	}
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return ""
	}
	return ts
}
