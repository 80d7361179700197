// Package followstatus реализует HTTP-обработчик проверки подписки.
package followstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
)

// Handler обрабатывает запросы на проверку статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки подписки.
type Service interface {
	FollowStatus(ctx context.Context, followerUID, targetUID string) (bool, error)
	FollowersCount(ctx context.Context, userID string) (int64, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на проверку подписки на пользователя по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.followstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	meUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	targetID := chi.URLParam(r, "id")
	if targetID == "" {
		log.Error("missing target id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("target id is required"))
		return
	}

	following, err := h.service.FollowStatus(r.Context(), meUID, targetID)
	if err != nil {
		log.Error("failed to check follow status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check follow status"))
		return
	}

	// Счётчик берётся из кеш-зеркала, его сбой не роняет основной ответ.
	count, err := h.service.FollowersCount(r.Context(), targetID)
	if err != nil {
		log.Warn("failed to count followers", sl.Err(err))
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following":      following,
		"followersCount": count,
	}))
}
