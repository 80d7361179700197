// Package vote реализует HTTP-обработчик голосования за датасет.
// Повторный голос того же пользователя перезаписывает прежний.
package vote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/mongodb"
)

// Request описывает тело запроса голосования.
type Request struct {
	Vote int `json:"vote" validate:"required,min=1,max=5"`
}

// Handler управляет HTTP-запросами на голосование.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики голосования.
type Service interface {
	SetVote(ctx context.Context, userUID, idDataset string, vote int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на голосование за датасет по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.vote"
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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.SetVote(r.Context(), meUID, idDataset, req.Vote); err != nil {
		if errors.Is(err, mongodb.ErrDatasetNotFound) {
			log.Info("dataset not found", slog.String("id", idDataset))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("dataset not found"))
			return
		}
		log.Error("failed to save vote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save vote"))
		return
	}

	log.Info("success to save vote",
		slog.String("dataset", idDataset), slog.Int("vote", req.Vote))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vote": req.Vote,
	}))
}
