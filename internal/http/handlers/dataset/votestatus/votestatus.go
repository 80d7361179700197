// Package votestatus реализует HTTP-обработчик чтения голоса
// текущего пользователя за датасет.
package votestatus

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
)

// Handler обрабатывает запросы на чтение голоса за датасет.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения голоса.
type Service interface {
	Vote(ctx context.Context, userUID, idDataset string) (int, bool, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на чтение голоса за датасет по id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.votestatus"
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

	vote, voted, err := h.service.Vote(r.Context(), meUID, idDataset)
	if err != nil {
		log.Error("failed to read vote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read vote"))
		return
	}

	log.Info("success to read vote",
		slog.String("dataset", idDataset), slog.Bool("voted", voted))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vote":  vote,
		"voted": voted,
	}))
}
