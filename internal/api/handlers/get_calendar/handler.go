package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	getCalendar "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
)

const (
	msgInvalidIDs       = "некорректный список ID предметов или локаций"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSelector  = "необходимо указать предмет или локацию"
	msgInvalidDateRange = "некорректный диапазон дат"
)

type Handler struct {
	useCase GetCalendarUseCase
	actors  ActorResolver
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, actors ActorResolver, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		actors:  actors,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: item, location (хотя бы один), startDate, endDate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Пользователь опционален: без X-User-ID календарь строится для анонима
	userID, _ := middleware.GetUserID(r.Context())
	actor := h.actors.ResolveActor(r.Context(), userID)

	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), actor)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid query: %v", err)
		if errors.Is(err, errInvalidDate) {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidIDs)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrMissingSelector):
			h.logger.Warn("GET /calendar - Missing item and location: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMissingSelector)

		case errors.Is(err, getCalendar.ErrInvalidDateRange):
			h.logger.Warn("GET /calendar - Invalid date range: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Calendar built: user_id=%d, range=%s..%s",
		userID, result.Calendar.StartDate, result.Calendar.EndDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
