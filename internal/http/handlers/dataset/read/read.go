// Package read реализует HTTP-обработчик получения датасета по id.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/mongodb"
)

// Handler обрабатывает запросы на получение датасета по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения датасета.
type Service interface {
	Read(ctx context.Context, idDataset string) (*models.Dataset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение датасета по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idDataset := chi.URLParam(r, "id")
	if idDataset == "" {
		log.Error("missing dataset id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("dataset id is required"))
		return
	}

	ds, err := h.service.Read(r.Context(), idDataset)
	if err != nil {
		if errors.Is(err, mongodb.ErrDatasetNotFound) {
			log.Info("dataset not found", slog.String("id", idDataset))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dataset not found"))
			return
		}
		log.Error("failed to read dataset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read dataset"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"dataset": ds,
	}))
}
