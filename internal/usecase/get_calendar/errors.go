package get_calendar

import "errors"

var (
	// ErrMissingSelector возвращается, когда не задан ни предмет, ни локация
	ErrMissingSelector = errors.New("get_calendar: item or location is required")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("get_calendar: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
