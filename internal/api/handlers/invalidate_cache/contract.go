package invalidate_cache

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type CacheInvalidator interface {
	InvalidateByTag(ctx context.Context, tags ...string) error
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) domain.Actor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
