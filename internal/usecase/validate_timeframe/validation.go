package validate_timeframe

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Validate проверяет кандидата против существующих bookable таймфреймов той же пары (location, item).
// Правилу подчиняются только bookable таймфреймы с локацией, предметом и датой начала.
// Возвращает nil, если конфликтов нет.
func Validate(candidate *domain.Timeframe, existing []*domain.Timeframe) *ValidationError {
	if candidate == nil || !candidate.IsSubjectToOverlapCheck() {
		return nil
	}

	if candidate.HasTimeWindowGap() {
		return &ValidationError{Kind: KindIncompleteTimeWindow}
	}

	candidateDates := availability.DateRangeOf(candidate)
	candidateTimes := availability.TimeWindowOf(candidate)

	for _, other := range existing {
		if other == nil || other.StartDate == nil || other.ID == candidate.ID {
			continue
		}

		if !availability.DateRangesOverlap(candidateDates, availability.DateRangeOf(other)) {
			continue
		}

		if other.Grid != candidate.Grid {
			return &ValidationError{
				Kind:             KindGridMismatchOnOverlap,
				ConflictingID:    other.ID,
				ConflictingTitle: other.Title,
			}
		}

		if availability.TimeRangesOverlap(candidateTimes, availability.TimeWindowOf(other)) {
			return &ValidationError{
				Kind:             KindTimeSlotOverlap,
				ConflictingID:    other.ID,
				ConflictingTitle: other.Title,
			}
		}
	}

	return nil
}
