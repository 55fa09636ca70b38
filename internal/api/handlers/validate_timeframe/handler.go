package validate_timeframe

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeframe   = "некорректные данные таймфрейма"
)

type Handler struct {
	useCase ValidateTimeframeUseCase
	logger  Logger
}

func NewHandler(useCase ValidateTimeframeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/timeframes/validate
// Отказ возвращается со статусом 200 и valid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateTimeframeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeframes/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /timeframes/validate - Failed to parse timeframe: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeframe)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, validateTimeframe.ErrInvalidInput) {
			h.logger.Warn("POST /timeframes/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeframe)
			return
		}
		h.logger.Error("POST /timeframes/validate - Failed to validate timeframe: id=%d, error=%v", req.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /timeframes/validate - Timeframe checked: id=%d, valid=%t", req.ID, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
