package get_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil || !req.Query.HasSelector() {
		return ErrMissingSelector
	}

	q := req.Query
	if q.StartDate != nil && q.EndDate != nil {
		days := domain.DaysBetween(*q.StartDate, *q.EndDate)
		if days < 0 {
			return fmt.Errorf("%w: end date is before start date", ErrInvalidDateRange)
		}
		if days > domain.MaxCalendarRangeDays {
			return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidDateRange, domain.MaxCalendarRangeDays)
		}
	}

	return nil
}
