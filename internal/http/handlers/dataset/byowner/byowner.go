// Package byowner реализует HTTP-обработчик получения датасетов пользователя.
package byowner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Handler обрабатывает запросы на получение датасетов владельца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки по владельцу.
type Service interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]*models.Dataset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение датасетов пользователя по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.byowner"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID := chi.URLParam(r, "userId")
	if ownerUID == "" {
		log.Error("missing user id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user id is required"))
		return
	}

	datasets, err := h.service.ListByOwner(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to list datasets by owner", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list datasets"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"datasets":   datasets,
		"list_count": len(datasets),
	}))
}
