package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

// ComputeFunc вычисляет значение при промахе.
// Возвращает сериализованное значение, теги зависимостей, известные только после вычисления,
// и признак store=false, если результат сохранять не нужно.
type ComputeFunc func(ctx context.Context) (value []byte, tags []string, store bool, err error)

// Cache кэш вычисленных результатов с инвалидацией по тегам.
// Ошибки бэкенда не возвращаются вызывающему: чтение считается промахом, запись пропускается.
type Cache struct {
	backend      Backend
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger
}

// New создает кэш. metrics может быть nil
func New(backend Backend, m *metrics.Metrics, logger Logger) *Cache {
	return &Cache{
		backend:      backend,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (c *Cache) WithTimeProvider(tp TimeProvider) *Cache {
	c.timeProvider = tp
	return c
}

// GetOrCompute возвращает сохраненное значение по ключу или вычисляет и сохраняет его.
// Ошибка compute возвращается как есть, результат не сохраняется.
func (c *Cache) GetOrCompute(ctx context.Context, key string, tags []string, ttl TTLPolicy, compute ComputeFunc) ([]byte, error) {
	if compute == nil {
		return nil, ErrNilCompute
	}
	if c == nil || c.backend == nil {
		value, _, _, err := compute(ctx)
		return value, err
	}

	namespace := namespaceOf(key)

	// 1. Пробуем прочитать из кэша
	value, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache: get key=%s failed, treating as miss: %v", key, err)
	}
	if err == nil && ok {
		c.observeRequest(namespace, "hit")
		return value, nil
	}
	c.observeRequest(namespace, "miss")

	// 2. Вычисляем значение
	value, extraTags, store, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if !store {
		return value, nil
	}

	// 3. Сохраняем с тегами
	allTags := mergeTags(tags, extraTags)
	expiry := ttl.TTL(c.timeProvider.Now())
	if expiry <= 0 {
		return value, nil
	}
	if err := c.backend.Set(ctx, key, value, allTags, expiry); err != nil {
		c.logger.Warn("Cache: set key=%s failed: %v", key, err)
		return value, nil
	}
	if c.metrics != nil {
		c.metrics.CacheStoresTotal.WithLabelValues(namespace).Inc()
	}

	return value, nil
}

// InvalidateByTag удаляет все записи с любым из тегов
func (c *Cache) InvalidateByTag(ctx context.Context, tags ...string) error {
	if c == nil || c.backend == nil {
		return nil
	}

	var firstErr error
	for _, tag := range tags {
		removed, err := c.backend.InvalidateTag(ctx, tag)
		if err != nil {
			c.logger.Error("Cache: invalidate tag=%s failed: %v", tag, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("invalidate tag %s: %w", tag, err)
			}
			continue
		}
		if c.metrics != nil {
			c.metrics.CacheInvalidationsTotal.WithLabelValues(namespaceOf(tag)).Inc()
		}
		if removed > 0 {
			c.logger.Info("Cache: tag=%s invalidated %d entries", tag, removed)
		}
	}

	return firstErr
}

func (c *Cache) observeRequest(namespace, result string) {
	if c.metrics != nil {
		c.metrics.CacheRequestsTotal.WithLabelValues(namespace, result).Inc()
	}
}

// GetOrCompute типизированная обертка над Cache.GetOrCompute, хранящая значения в JSON.
// Результат, реализующий Cacheable и вернувший false, не сохраняется.
// Испорченная запись считается промахом и перевычисляется.
func GetOrCompute[T any](
	ctx context.Context,
	c *Cache,
	key string,
	tags []string,
	ttl TTLPolicy,
	compute func(ctx context.Context) (T, []string, error),
) (T, error) {
	var computed *T

	raw, err := c.GetOrCompute(ctx, key, tags, ttl, func(ctx context.Context) ([]byte, []string, bool, error) {
		value, extraTags, err := compute(ctx)
		if err != nil {
			return nil, nil, false, err
		}
		computed = &value

		store := true
		if cacheable, ok := any(value).(Cacheable); ok {
			store = cacheable.Cacheable()
		}

		payload, err := json.Marshal(value)
		if err != nil {
			return nil, nil, false, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return payload, extraTags, store, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if computed != nil {
		return *computed, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.Warn("Cache: decode key=%s failed, recomputing: %v", key, err)
		value, _, err := compute(ctx)
		return value, err
	}
	return value, nil
}

func mergeTags(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, tag := range list {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged
}
