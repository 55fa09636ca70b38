package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryEntries = 1024

type memoryEntry struct {
	value     []byte
	tags      []string
	expiresAt time.Time
}

// MemoryBackend in-process бэкенд: LRU ограниченного размера и индекс тегов.
// Записи неизменяемы и заменяются целиком под мьютексом.
type MemoryBackend struct {
	mu      sync.Mutex
	now     func() time.Time
	entries *lru.Cache[string, memoryEntry]
	tags    map[string]map[string]struct{}
}

// NewMemoryBackend создает бэкенд на maxEntries записей. now может быть nil
func NewMemoryBackend(maxEntries int, now func() time.Time) (*MemoryBackend, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMemoryEntries
	}
	if now == nil {
		now = time.Now
	}

	b := &MemoryBackend{
		now:  now,
		tags: make(map[string]map[string]struct{}),
	}

	entries, err := lru.NewWithEvict[string, memoryEntry](maxEntries, b.onEvictLocked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	b.entries = entries

	return b, nil
}

// Get реализует Backend
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !b.now().Before(entry.expiresAt) {
		b.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set реализует Backend
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	entry := memoryEntry{
		value:     stored,
		tags:      append([]string(nil), tags...),
		expiresAt: b.now().Add(ttl),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Старая запись удаляется вместе со своими тегами
	b.entries.Remove(key)
	b.entries.Add(key, entry)
	for _, tag := range entry.tags {
		keys, ok := b.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			b.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// InvalidateTag реализует Backend
func (b *MemoryBackend) InvalidateTag(_ context.Context, tag string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := b.tags[tag]
	removed := 0
	for key := range keys {
		if b.entries.Remove(key) {
			removed++
		}
	}
	delete(b.tags, tag)
	return removed, nil
}

// Len возвращает число записей, включая еще не вычищенные истекшие
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries.Len()
}

// onEvictLocked вызывается LRU при удалении записи; мьютекс уже захвачен
func (b *MemoryBackend) onEvictLocked(key string, entry memoryEntry) {
	for _, tag := range entry.tags {
		keys, ok := b.tags[tag]
		if !ok {
			continue
		}
		delete(keys, key)
		if len(keys) == 0 {
			delete(b.tags, tag)
		}
	}
}
