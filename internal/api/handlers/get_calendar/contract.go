package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

type GetCalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendar.Request) (*getCalendar.Response, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) domain.Actor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
