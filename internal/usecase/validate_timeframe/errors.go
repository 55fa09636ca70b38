package validate_timeframe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_timeframe: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_timeframe: internal error")
)

// ErrorKind причина отказа
type ErrorKind string

const (
	// KindIncompleteTimeWindow задано время выдачи без времени возврата
	KindIncompleteTimeWindow ErrorKind = "incomplete_time_window"
	// KindGridMismatchOnOverlap пересекающиеся по датам таймфреймы с разной сеткой
	KindGridMismatchOnOverlap ErrorKind = "grid_mismatch_on_overlap"
	// KindTimeSlotOverlap пересекающиеся по датам таймфреймы с пересекающимся временем
	KindTimeSlotOverlap ErrorKind = "time_slot_overlap"
)

// ValidationError отказ в сохранении таймфрейма.
// Для конфликтов содержит идентификатор и название конфликтующего таймфрейма.
type ValidationError struct {
	Kind             ErrorKind
	ConflictingID    int64
	ConflictingTitle string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindIncompleteTimeWindow:
		return "a pickup time but no return time has been set"
	case KindGridMismatchOnOverlap:
		return fmt.Sprintf("overlapping bookable timeframes must have the same grid, see timeframe %d: %s",
			e.ConflictingID, e.ConflictingTitle)
	case KindTimeSlotOverlap:
		return fmt.Sprintf("time periods of overlapping timeframes must not overlap, see timeframe %d: %s",
			e.ConflictingID, e.ConflictingTitle)
	default:
		return string(e.Kind)
	}
}
