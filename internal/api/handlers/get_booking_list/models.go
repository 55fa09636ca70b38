package get_booking_list

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// ToServiceRequest создает запрос к сервису из query параметров.
// Администратор видит все бронирования, остальные - только свои.
func ToServiceRequest(query url.Values, actor domain.Actor) (*models.GetBookingListRequest, error) {
	page, err := optionalInt(query.Get("page"))
	if err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	perPage, err := optionalInt(query.Get("perPage"))
	if err != nil {
		return nil, fmt.Errorf("perPage: %w", err)
	}
	startDate, err := handlers.ParseOptionalDate(query.Get("startDate"))
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	endDate, err := handlers.ParseOptionalDate(query.Get("endDate"))
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &models.GetBookingListRequest{
		UserID:  actor.UserID,
		IsAdmin: actor.IsAdmin(),
		Page:    page,
		PerPage: perPage,
		Search:  query.Get("search"),
		Sort:    query.Get("sort"),
		Order:   query.Get("order"),
		Filters: models.ListFilters{
			Location:  query.Get("location"),
			Item:      query.Get("item"),
			User:      query.Get("user"),
			Status:    query.Get("status"),
			StartDate: startDate,
			EndDate:   endDate,
		},
	}, nil
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
