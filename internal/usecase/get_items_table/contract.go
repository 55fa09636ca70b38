package get_items_table

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

// CatalogRepository интерфейс репозитория предметов и локаций
type CatalogRepository interface {
	ListPublishedItems(ctx context.Context) ([]*domain.Item, error)
	GetLocationsByIDs(ctx context.Context, ids []int64) ([]*domain.Location, error)
}

// TimeframeRepository интерфейс репозитория таймфреймов
type TimeframeRepository interface {
	FindBookableInRange(ctx context.Context, start time.Time, end *time.Time, locationIDs, itemIDs []int64) ([]*domain.Timeframe, error)
}

// CalendarBuilder построение календаря пары (предмет, локация)
type CalendarBuilder interface {
	Execute(ctx context.Context, req *get_calendar.Request) (*get_calendar.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
