// Package cachestats реализует служебный HTTP-обработчик диагностики кеша.
package cachestats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
)

// Handler обрабатывает запросы на диагностику числа ключей кеша.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики диагностики кеша.
type Service interface {
	CacheStats(ctx context.Context) (map[string]int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на число ключей по известным шаблонам.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dev.cachestats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.CacheStats(r.Context())
	if err != nil {
		log.Error("failed to collect cache stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect cache stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
