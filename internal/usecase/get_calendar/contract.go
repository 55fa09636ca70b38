package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TimeframeRepository интерфейс репозитория таймфреймов
type TimeframeRepository interface {
	FindBookableInRange(ctx context.Context, start time.Time, end *time.Time, locationIDs, itemIDs []int64) ([]*domain.Timeframe, error)
	FindSlotsInRange(ctx context.Context, start, end time.Time, locationIDs, itemIDs []int64, kinds []domain.TimeframeKind) (map[string][]domain.Slot, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
}

// PermissionService проверка права бронирования
type PermissionService interface {
	CanBook(actor domain.Actor, tf *domain.Timeframe) bool
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
