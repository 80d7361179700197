// Package markread реализует HTTP-обработчик отметки уведомления прочитанным.
// Уведомление адресуется позицией в списке, свежие первыми.
package markread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/redisdb"
)

// Handler обрабатывает запросы на отметку уведомления прочитанным.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отметки уведомлений.
type Service interface {
	MarkRead(ctx context.Context, userID string, index int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на отметку уведомления прочитанным по индексу.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markread"
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

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		log.Error("failed to decode index from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid notification index"))
		return
	}

	if err := h.service.MarkRead(r.Context(), meUID, index); err != nil {
		if errors.Is(err, redisdb.ErrNotificationNotFound) {
			log.Info("notification not found", slog.Int("index", index))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("notification not found"))
			return
		}
		log.Error("failed to mark notification read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not mark notification read"))
		return
	}

	render.JSON(w, r, response.OK())
}
