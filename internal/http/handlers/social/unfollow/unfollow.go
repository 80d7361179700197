// Package unfollow реализует HTTP-обработчик удаления подписки.
// Отписка от неподписанного пользователя не является ошибкой.
package unfollow

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

// Handler обрабатывает запросы на отписку от пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отписки.
type Service interface {
	Unfollow(ctx context.Context, followerUID, targetUID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на отписку от пользователя по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.unfollow"
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

	if err := h.service.Unfollow(r.Context(), meUID, targetID); err != nil {
		log.Error("failed to unfollow user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unfollow user"))
		return
	}

	log.Info("success to unfollow user", slog.String("target", targetID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following": false,
	}))
}
