package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ключи записей не передаются через KEYS: скрипт рассчитан на одиночный Redis, не на кластер.
// DEL вызывается пачками, unpack ограничен размером стека Lua
var invalidateTagScript = redis.NewScript(`
local members = redis.call('SMEMBERS', KEYS[1])
local removed = 0
for i = 1, #members, 1000 do
	removed = removed + redis.call('DEL', unpack(members, i, math.min(i + 999, #members)))
end
redis.call('DEL', KEYS[1])
return removed
`)

const (
	defaultRedisPrefix = "availability"
	defaultTagTTL      = 48 * time.Hour
)

// RedisBackend бэкенд на Redis.
// Значение хранится в "<prefix>:entry:<key>", ключи записей с тегом - в множестве "<prefix>:tag:<tag>".
// Запись значения и тегов выполняется одной транзакцией MULTI/EXEC.
type RedisBackend struct {
	rdb    redis.UniversalClient
	prefix string
	tagTTL time.Duration
}

// NewRedisBackend создает бэкенд. Время жизни записи ограничено tagTTL,
// чтобы множество тегов не истекало раньше своих записей
func NewRedisBackend(rdb redis.UniversalClient, prefix string, tagTTL time.Duration) (*RedisBackend, error) {
	if rdb == nil {
		return nil, fmt.Errorf("%w: redis client is nil", ErrInvalidConfig)
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if tagTTL <= 0 {
		tagTTL = defaultTagTTL
	}
	return &RedisBackend{rdb: rdb, prefix: prefix, tagTTL: tagTTL}, nil
}

// Get реализует Backend
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.rdb.Get(ctx, b.entryKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set реализует Backend
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	if ttl > b.tagTTL {
		ttl = b.tagTTL
	}
	entryKey := b.entryKey(key)

	_, err := b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, entryKey, value, ttl)
		for _, tag := range tags {
			tagKey := b.tagKey(tag)
			pipe.SAdd(ctx, tagKey, entryKey)
			pipe.Expire(ctx, tagKey, b.tagTTL)
		}
		return nil
	})
	return err
}

// InvalidateTag реализует Backend. Чтение множества тега и удаление записей атомарны
func (b *RedisBackend) InvalidateTag(ctx context.Context, tag string) (int, error) {
	removed, err := invalidateTagScript.Run(ctx, b.rdb, []string{b.tagKey(tag)}).Int()
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (b *RedisBackend) entryKey(key string) string {
	return b.prefix + ":entry:" + key
}

func (b *RedisBackend) tagKey(tag string) string {
	return b.prefix + ":tag:" + tag
}
