package save_timeframe

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil || req.Timeframe == nil {
		return fmt.Errorf("%w: timeframe is required", ErrInvalidInput)
	}
	tf := req.Timeframe

	if tf.ID < 0 {
		return fmt.Errorf("%w: id must not be negative", ErrInvalidInput)
	}

	if !tf.Kind.IsKnown() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidInput, tf.Kind)
	}

	if tf.Grid != domain.GridFullSlot && tf.Grid != domain.GridHourly {
		return fmt.Errorf("%w: unknown grid %d", ErrInvalidInput, tf.Grid)
	}

	if tf.StartDate != nil && tf.EndDate != nil && domain.DaysBetween(*tf.StartDate, *tf.EndDate) < 0 {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	if tf.StartTime != nil && *tf.StartTime != "" && !tf.StartTime.IsValid() {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, *tf.StartTime)
	}

	if tf.EndTime != nil && *tf.EndTime != "" && !tf.EndTime.IsValid() {
		return fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, *tf.EndTime)
	}

	if tf.MaxAdvanceBookingDays != nil && *tf.MaxAdvanceBookingDays < 0 {
		return fmt.Errorf("%w: max advance booking days must not be negative", ErrInvalidInput)
	}

	return nil
}
