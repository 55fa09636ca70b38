package validate_timeframe

import (
	"context"

	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

type ValidateTimeframeUseCase interface {
	Execute(ctx context.Context, req *validateTimeframe.Request) (*validateTimeframe.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
