// Package search реализует HTTP-обработчик поиска датасетов по имени.
package search

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

// Handler обрабатывает запросы на поиск датасетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска датасетов.
type Service interface {
	Search(ctx context.Context, nombre string) ([]*models.Dataset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на поиск датасетов по подстроке имени.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nombre := chi.URLParam(r, "nombre")
	datasets, err := h.service.Search(r.Context(), nombre)
	if err != nil {
		log.Error("failed to search datasets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search datasets"))
		return
	}

	log.Info("success to search datasets",
		slog.String("nombre", nombre), slog.Int("list_count", len(datasets)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"datasets":   datasets,
		"list_count": len(datasets),
	}))
}
