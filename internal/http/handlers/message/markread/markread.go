// Package markread реализует HTTP-обработчик отметки сообщений прочитанными.
package markread

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

// Handler обрабатывает запросы на отметку входящих сообщений прочитанными.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметки прочтения.
type Service interface {
	MarkRead(ctx context.Context, userID, otherID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на отметку сообщений от собеседника прочитанными.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.markread"
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

	otherID := chi.URLParam(r, "otherUserId")
	if otherID == "" {
		log.Error("missing other user id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("other user id is required"))
		return
	}

	if err := h.service.MarkRead(r.Context(), meUID, otherID); err != nil {
		log.Error("failed to mark messages read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not mark messages read"))
		return
	}

	render.JSON(w, r, response.OK())
}
