package timeframe

import "errors"

var (
	// ErrTimeframeNotFound возвращается, когда таймфрейм не найден
	ErrTimeframeNotFound = errors.New("timeframe.repository: timeframe not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeframe.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeframe.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeframe.repository: failed to scan row")
)
