// Package follow реализует HTTP-обработчик создания подписки на пользователя.
//
// Повторная подписка на того же пользователя не является ошибкой,
// подписка на себя и на несуществующего пользователя отклоняются.
package follow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/social"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// Request описывает тело запроса на подписку.
type Request struct {
	TargetID string `json:"targetId" validate:"required"`
}

// Handler управляет HTTP-запросами на подписку.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Follow(ctx context.Context, followerUID, targetUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписаться на пользователя
// @Tags Social
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Идентификатор пользователя"
// @Success 200 {object} response.Response "Подписка создана или уже существовала"
// @Failure 400 {object} response.ErrorResponse "Пустой targetId или подписка на себя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.social.follow"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("targetId is required"))
		return
	}

	if err := h.service.Follow(r.Context(), meUID, req.TargetID); err != nil {
		switch {
		case errors.Is(err, social.ErrSelfFollow):
			log.Info("attempt to follow self")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cannot follow yourself"))
		case errors.Is(err, postgres.ErrUserNotFound):
			log.Info("follow target not found", slog.String("target", req.TargetID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to follow user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not follow user"))
		}
		return
	}

	log.Info("success to follow user", slog.String("target", req.TargetID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following": true,
	}))
}
