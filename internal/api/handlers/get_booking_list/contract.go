package get_booking_list

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

type BookingService interface {
	GetList(ctx context.Context, req *models.GetBookingListRequest) (*models.BookingListResponse, error)
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID int64) domain.Actor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
