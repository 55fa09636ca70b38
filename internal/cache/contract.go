package cache

import (
	"context"
	"time"
)

// Backend хранилище записей кэша
type Backend interface {
	// Get возвращает значение по ключу; ok=false, если записи нет или она истекла
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set сохраняет значение с тегами и временем жизни
	Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error
	// InvalidateTag удаляет все записи с тегом и возвращает их количество
	InvalidateTag(ctx context.Context, tag string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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

// Cacheable реализуют результаты, которые не всегда нужно сохранять
type Cacheable interface {
	Cacheable() bool
}
