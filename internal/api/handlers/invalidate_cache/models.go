package invalidate_cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// InvalidateCacheRequest HTTP request model. Теги в формате "<prefix>:<id>"
type InvalidateCacheRequest struct {
	Tags []string `json:"tags"`
}

// InvalidateCacheResponse HTTP response model
type InvalidateCacheResponse struct {
	Invalidated []string `json:"invalidated"`
}

var knownPrefixes = map[string]struct{}{
	domain.TagTimeframe: {},
	domain.TagItem:      {},
	domain.TagLocation:  {},
	domain.TagBooking:   {},
	domain.TagUser:      {},
}

// Validate проверяет формат тегов и убирает дубликаты
func (r *InvalidateCacheRequest) Validate() ([]string, error) {
	if len(r.Tags) == 0 {
		return nil, fmt.Errorf("tags are required")
	}

	seen := make(map[string]struct{}, len(r.Tags))
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		prefix, id, ok := strings.Cut(tag, ":")
		if !ok {
			return nil, fmt.Errorf("tag %q has no prefix", tag)
		}
		if _, known := knownPrefixes[prefix]; !known {
			return nil, fmt.Errorf("tag %q has unknown prefix", tag)
		}
		if n, err := strconv.ParseInt(id, 10, 64); err != nil || n <= 0 {
			return nil, fmt.Errorf("tag %q has invalid id", tag)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}
