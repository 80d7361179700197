// Package listusers реализует HTTP-обработчик поиска пользователей.
//
// Возвращает всех пользователей кроме вызывающего, чьи имя или полное имя
// содержат подстроку запроса, с отметкой о подписке вызывающего.
package listusers

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

// Handler обрабатывает запросы на поиск пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска пользователей.
type Service interface {
	ListUsers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск пользователей
// @Description Ищет пользователей по подстроке имени без учёта регистра.
// @Tags Social
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Подстрока имени или полного имени"
// @Success 200 {object} response.Response "Найденные пользователи"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.listusers"
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
	users, err := h.service.ListUsers(r.Context(), meUID, q)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("success to list users", slog.Int("list_count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users":      users,
		"list_count": len(users),
	}))
}
