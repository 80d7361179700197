// Package conversation реализует HTTP-обработчик чтения переписки.
//
// Сообщения возвращаются в хронологическом порядке, входящие сообщения
// вызывающего попутно отмечаются прочитанными.
package conversation

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
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Handler обрабатывает запросы на чтение переписки с собеседником.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения переписки.
type Service interface {
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на чтение переписки с пользователем по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.conversation"
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

	msgs, err := h.service.Conversation(r.Context(), meUID, otherID)
	if err != nil {
		log.Error("failed to read conversation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read conversation"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"messages":   msgs,
		"list_count": len(msgs),
	}))
}
