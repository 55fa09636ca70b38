package get_items_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	getItemsTable "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_items_table"
)

const (
	msgInvalidDays = "некорректное количество дней"
)

type Handler struct {
	useCase GetItemsTableUseCase
	actors  ActorResolver
	logger  Logger
}

func NewHandler(useCase GetItemsTableUseCase, actors ActorResolver, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		actors:  actors,
		logger:  logger,
	}
}

// Handle GET /api/v1/items-table
// Query params: days (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var days int
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /items-table - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	userID, _ := middleware.GetUserID(r.Context())
	req := &getItemsTable.Request{
		Days:  days,
		Actor: h.actors.ResolveActor(r.Context(), userID),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getItemsTable.ErrInvalidInput) {
			h.logger.Warn("GET /items-table - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		h.logger.Error("GET /items-table - Failed to build table: days=%d, error=%v", days, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /items-table - Table built: %s..%s, rows=%d", result.StartDate, result.EndDate, len(result.Rows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
