package save_timeframe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	saveTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/save_timeframe"
	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeframeID = "некорректный ID таймфрейма"
	msgInvalidTimeframe   = "некорректные данные таймфрейма"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgTimeframeNotFound  = "таймфрейм не найден"
	msgTimeframeConflict  = "таймфрейм пересекается с существующим"
)

type Handler struct {
	useCase SaveTimeframeUseCase
	actors  ActorResolver
	logger  Logger
}

func NewHandler(useCase SaveTimeframeUseCase, actors ActorResolver, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		actors:  actors,
		logger:  logger,
	}
}

// Handle POST /api/v1/timeframes и PUT /api/v1/timeframes/{timeframeId}
// Сохранять таймфреймы могут только администраторы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /timeframes"

	// Извлекаем timeframeId из URL (только для обновления)
	var timeframeID int64
	if raw, ok := mux.Vars(r)["timeframeId"]; ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("%s - Invalid timeframe ID: %q", route, raw)
			handlers.RespondBadRequest(w, msgInvalidTimeframeID)
			return
		}
		timeframeID = id
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.actors.ResolveActor(r.Context(), userID).IsAdmin() {
		h.logger.Warn("%s - Forbidden: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req SaveTimeframeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(timeframeID)
	if err != nil {
		h.logger.Warn("%s - Failed to parse timeframe: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeframe)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var verr *validateTimeframe.ValidationError
		switch {
		case errors.Is(err, saveTimeframe.ErrValidationFailed):
			errors.As(err, &verr)
			h.logger.Warn("%s - Timeframe rejected: id=%d, user_id=%d, error=%v", route, timeframeID, userID, err)
			handlers.RespondJSON(w, http.StatusConflict,
				NewConflictResponse(http.StatusConflict, msgTimeframeConflict, verr))

		case errors.Is(err, saveTimeframe.ErrTimeframeNotFound):
			h.logger.Warn("%s - Timeframe not found: id=%d", route, timeframeID)
			handlers.RespondNotFound(w, msgTimeframeNotFound)

		case errors.Is(err, saveTimeframe.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidTimeframe)

		default:
			h.logger.Error("%s - Failed to save timeframe: id=%d, user_id=%d, error=%v", route, timeframeID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("%s - Timeframe saved: id=%d, created=%t, user_id=%d", route, result.Timeframe.ID, result.Created, userID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
