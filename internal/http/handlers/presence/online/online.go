// Package online реализует HTTP-обработчик списка онлайн-пользователей.
package online

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
)

// Handler обрабатывает запросы на список пользователей онлайн.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка онлайн-пользователей.
type Service interface {
	OnlineUsers(ctx context.Context) ([]string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на список пользователей с активным heartbeat.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.presence.online"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.OnlineUsers(r.Context())
	if err != nil {
		log.Error("failed to list online users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list online users"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"online":     users,
		"list_count": len(users),
	}))
}
