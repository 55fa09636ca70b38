package save_timeframe

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

// TimeframeRepository интерфейс репозитория таймфреймов
type TimeframeRepository interface {
	Create(ctx context.Context, tf *domain.Timeframe) (*domain.Timeframe, error)
	Update(ctx context.Context, tf *domain.Timeframe) error
	GetByID(ctx context.Context, id int64) (*domain.Timeframe, error)
}

// Validator проверка пересечений bookable таймфреймов
type Validator interface {
	Execute(ctx context.Context, req *validate_timeframe.Request) (*validate_timeframe.Response, error)
}

// CacheInvalidator сброс записей кэша по тегам
type CacheInvalidator interface {
	InvalidateByTag(ctx context.Context, tags ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
