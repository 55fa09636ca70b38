package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint строит ключ кэша "<namespace>:<hash>" по структуре параметров запроса.
// v должен быть структурой только из значимых для результата полей:
// порядок полей структуры фиксирован, ключи map сортируются при сериализации.
func Fingerprint(namespace string, v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		payload = []byte(fmt.Sprintf("%#v", v))
	}
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16)
}

// Tag строит тег сущности "<prefix>:<id>"
func Tag(prefix string, id int64) string {
	return prefix + ":" + strconv.FormatInt(id, 10)
}

// Tags строит теги для списка идентификаторов
func Tags(prefix string, ids ...int64) []string {
	tags := make([]string, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, Tag(prefix, id))
	}
	return tags
}

// namespaceOf возвращает пространство имен ключа (часть до первого двоеточия)
func namespaceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
