// Package update реализует HTTP-обработчик частичного обновления датасета.
//
// Отсутствующее в JSON поле остаётся без изменений, fecha_actualizacion
// освежается при каждом обновлении.
package update

import (
	"context"
	"encoding/json"
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

// Request описывает тело запроса обновления датасета.
// Nil-поле означает "оставить без изменений".
type Request struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      *string `json:"estado"`
}

// Handler управляет HTTP-запросами на обновление датасета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления датасета.
type Service interface {
	Update(ctx context.Context, idDataset string, upd models.DatasetUpdate) (*models.Dataset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на частичное обновление датасета по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.update"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	upd := models.DatasetUpdate{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Estado:      req.Estado,
	}
	updated, err := h.service.Update(r.Context(), idDataset, upd)
	if err != nil {
		if errors.Is(err, mongodb.ErrDatasetNotFound) {
			log.Info("dataset not found", slog.String("id", idDataset))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dataset not found"))
			return
		}
		log.Error("failed to update dataset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update dataset"))
		return
	}

	log.Info("success to update dataset", slog.String("id", idDataset))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"dataset": updated,
	}))
}
