package validate_timeframe

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TimeframeRepository интерфейс репозитория таймфреймов
type TimeframeRepository interface {
	FindByLocationItemKind(ctx context.Context, locationIDs, itemIDs []int64, kinds []domain.TimeframeKind, excludeID *int64) ([]*domain.Timeframe, error)
}

// Metrics счетчик результатов проверки
type Metrics interface {
	ObserveValidation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
