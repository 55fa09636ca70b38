package get_booking_list

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidSort   = "некорректное поле или направление сортировки"
)

type Handler struct {
	service BookingService
	actors  ActorResolver
	logger  Logger
}

func NewHandler(service BookingService, actors ActorResolver, logger Logger) *Handler {
	return &Handler{
		service: service,
		actors:  actors,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: page, perPage, search, sort, order, location, item, user, status, startDate, endDate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actor := h.actors.ResolveActor(r.Context(), userID)

	req, err := ToServiceRequest(r.URL.Query(), actor)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetList(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidSort):
			h.logger.Warn("GET /bookings - Invalid sort: user_id=%d, sort=%q, order=%q", userID, req.Sort, req.Order)
			handlers.RespondBadRequest(w, msgInvalidSort)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: user_id=%d, admin=%t, total=%d, page=%d",
		userID, req.IsAdmin, result.Total, result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
