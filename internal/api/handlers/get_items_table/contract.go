package get_items_table

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getItemsTable "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_items_table"
)

type GetItemsTableUseCase interface {
	Execute(ctx context.Context, req *getItemsTable.Request) (*getItemsTable.Response, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) domain.Actor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
