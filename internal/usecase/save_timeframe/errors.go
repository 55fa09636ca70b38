package save_timeframe

import "errors"

var (
	// ErrTimeframeNotFound возвращается, когда обновляемый таймфрейм не найден
	ErrTimeframeNotFound = errors.New("save_timeframe: timeframe not found")

	// ErrValidationFailed возвращается, когда таймфрейм конфликтует с существующими.
	// Причина доступна через errors.As(err, **validate_timeframe.ValidationError).
	ErrValidationFailed = errors.New("save_timeframe: timeframe validation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_timeframe: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_timeframe: internal error")
)
