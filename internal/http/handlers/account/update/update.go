// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Отсутствующее в JSON поле остаётся без изменений, переданное поле
// перезаписывает прежнее значение.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// Request описывает тело запроса обновления профиля.
// Nil-поле означает "оставить без изменений".
type Request struct {
	Username  *string `json:"username" validate:"omitempty,alphanum,min=3,max=32"`
	FullName  *string `json:"fullName"`
	// Формат даты проверяется разбором в ServeHTTP, не тегом валидатора.
	BirthDate *string `json:"birthDate"`
	Avatar    *string `json:"avatar"`
}

// Handler управляет HTTP-запросами на обновление профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateAccount(ctx context.Context, userUID string, upd models.AccountUpdate) (*models.Profile, error)
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
// @Summary Обновить профиль
// @Description Частично обновляет профиль текущего пользователя.
// @Tags Account
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /account [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
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
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	upd := models.AccountUpdate{
		Username: req.Username,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			log.Error("failed to parse birth date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid birth date"))
			return
		}
		upd.BirthDate = &birth
	}

	profile, err := h.service.UpdateAccount(r.Context(), userUID, upd)
	if err != nil {
		if errors.Is(err, postgres.ErrUsernameTaken) {
			log.Info("username already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("failed to update account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update account"))
		return
	}

	log.Info("success to update account", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": profile,
	}))
}
