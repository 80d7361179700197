// Package list реализует HTTP-обработчик получения всех датасетов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Handler обрабатывает запросы на получение списка датасетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка датасетов.
type Service interface {
	List(ctx context.Context) ([]*models.Dataset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение всех датасетов.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	datasets, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list datasets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list datasets"))
		return
	}

	log.Info("success to list datasets", slog.Int("list_count", len(datasets)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"datasets":   datasets,
		"list_count": len(datasets),
	}))
}
