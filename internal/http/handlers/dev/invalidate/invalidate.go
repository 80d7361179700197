// Package invalidate реализует служебный HTTP-обработчик сброса кеша по шаблону.
package invalidate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
)

// Request описывает тело запроса сброса кеша.
type Request struct {
	Pattern string `json:"pattern" validate:"required"`
}

// Handler обрабатывает запросы на сброс ключей кеша по glob-шаблону.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сброса кеша.
type Service interface {
	InvalidateCache(ctx context.Context, pattern string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на сброс кеша по шаблону.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dev.invalidate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	removed, err := h.service.InvalidateCache(r.Context(), req.Pattern)
	if err != nil {
		log.Error("failed to invalidate cache", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not invalidate cache"))
		return
	}

	log.Info("success to invalidate cache",
		slog.String("pattern", req.Pattern), slog.Int("removed", removed))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": removed,
	}))
}
