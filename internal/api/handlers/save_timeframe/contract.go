package save_timeframe

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	saveTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/save_timeframe"
)

type SaveTimeframeUseCase interface {
	Execute(ctx context.Context, req *saveTimeframe.Request) (*saveTimeframe.Response, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) domain.Actor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
