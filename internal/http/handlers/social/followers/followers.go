// Package followers реализует HTTP-обработчик списка подписчиков.
package followers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Handler обрабатывает запросы на список подписчиков вызывающего.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка подписчиков.
type Service interface {
	ListFollowers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписчиков
// @Description Возвращает подписчиков текущего пользователя с фильтром по имени.
// @Tags Social
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Подстрока имени или полного имени"
// @Success 200 {object} response.Response "Подписчики"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /followers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.followers"
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

	q := r.URL.Query().Get("q")
	followers, err := h.service.ListFollowers(r.Context(), meUID, q)
	if err != nil {
		log.Error("failed to list followers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list followers"))
		return
	}

	log.Info("success to list followers", slog.Int("list_count", len(followers)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"followers":  followers,
		"list_count": len(followers),
	}))
}
