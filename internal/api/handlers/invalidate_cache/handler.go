package invalidate_cache

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTags        = "некорректный список тегов"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	cache  CacheInvalidator
	actors ActorResolver
	logger Logger
}

func NewHandler(cache CacheInvalidator, actors ActorResolver, logger Logger) *Handler {
	return &Handler{
		cache:  cache,
		actors: actors,
		logger: logger,
	}
}

// Handle POST /api/v1/cache/invalidate
// Вызывается внешними сервисами после изменения предметов, локаций и бронирований.
// Доступно только администраторам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /cache/invalidate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.actors.ResolveActor(r.Context(), userID).IsAdmin() {
		h.logger.Warn("POST /cache/invalidate - Forbidden: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req InvalidateCacheRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cache/invalidate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tags, err := req.Validate()
	if err != nil {
		h.logger.Warn("POST /cache/invalidate - Invalid tags: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTags)
		return
	}

	if err := h.cache.InvalidateByTag(r.Context(), tags...); err != nil {
		h.logger.Error("POST /cache/invalidate - Failed to invalidate tags=%v: %v", tags, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /cache/invalidate - Tags invalidated: user_id=%d, tags=%v", userID, tags)
	handlers.RespondJSON(w, http.StatusOK, InvalidateCacheResponse{Invalidated: tags})
}
