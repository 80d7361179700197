// Package create реализует HTTP-обработчик создания датасета.
//
// Handler принимает multipart-форму с полями nombre, descripcion и
// необязательной датой fecha_inclusion, а также необязательными файлами:
// avatar, fotoRepositorio, archivos, videosGuia.
// Файлы сохраняются на локальный диск, записи о них попадают в документ.
package create

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/response"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/dataset"
)

// maxFormMemory ограничивает размер формы, разбираемой в памяти.
const maxFormMemory = 32 << 20

// Handler управляет HTTP-запросами на создание датасетов.
type Handler struct {
	log     *slog.Logger
	service Service
	files   FileSaver
}

// Service описывает интерфейс бизнес-логики создания датасета.
type Service interface {
	Create(ctx context.Context, ownerUID string, data dataset.CreateData) (*models.Dataset, error)
}

// FileSaver сохраняет загруженные файлы на диск.
type FileSaver interface {
	Save(fh *multipart.FileHeader, subdir string) (models.DatasetFile, error)
	SaveAll(fhs []*multipart.FileHeader, subdir string) ([]models.DatasetFile, error)
}

// New создает новый Handler с переданными логгером, сервисом и хранилищем файлов.
func New(log *slog.Logger, service Service, files FileSaver) *Handler {
	return &Handler{
		log:     log,
		service: service,
		files:   files,
	}
}

// ServeHTTP godoc
// @Summary Создать датасет
// @Description Создает датасет с необязательными файлами-вложениями.
// @Tags Datasets
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param nombre formData string true "Название датасета"
// @Param descripcion formData string false "Описание"
// @Param fecha_inclusion formData string false "Дата включения в формате 2006-01-02, по умолчанию текущая"
// @Success 201 {object} response.Response "Созданный датасет"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /datasets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dataset.create"
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

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	nombre := r.FormValue("nombre")
	if nombre == "" {
		log.Error("missing nombre field")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("nombre is required"))
		return
	}

	data := dataset.CreateData{
		Nombre:      nombre,
		Descripcion: r.FormValue("descripcion"),
	}

	if raw := r.FormValue("fecha_inclusion"); raw != "" {
		fecha, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse fecha_inclusion", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid fecha_inclusion"))
			return
		}
		data.FechaInclusion = &fecha
	}

	if file, ok := h.saveSingle(w, r, log, "avatar", "avatars"); !ok {
		return
	} else if file != nil {
		data.Avatar = file
	}
	if file, ok := h.saveSingle(w, r, log, "fotoRepositorio", "repos"); !ok {
		return
	} else if file != nil {
		data.FotoRepositorio = file
	}

	form := r.MultipartForm
	if fhs := form.File["archivos"]; len(fhs) > 0 {
		files, err := h.files.SaveAll(fhs, "archivos")
		if err != nil {
			log.Error("failed to save archivos", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not save files"))
			return
		}
		data.Archivos = files
	}
	if fhs := form.File["videosGuia"]; len(fhs) > 0 {
		files, err := h.files.SaveAll(fhs, "videos")
		if err != nil {
			log.Error("failed to save videosGuia", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not save files"))
			return
		}
		data.VideosGuia = files
	}

	created, err := h.service.Create(r.Context(), meUID, data)
	if err != nil {
		log.Error("failed to create dataset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create dataset"))
		return
	}

	log.Info("success to create dataset", slog.String("id", created.IDDataset))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"dataset": created,
	}))
}

// saveSingle сохраняет одиночный файл формы, ok=false означает,
// что ответ уже отправлен.
func (h *Handler) saveSingle(w http.ResponseWriter, r *http.Request,
	log *slog.Logger, field, subdir string) (*models.DatasetFile, bool) {
	fhs := r.MultipartForm.File[field]
	if len(fhs) == 0 {
		return nil, true
	}
	file, err := h.files.Save(fhs[0], subdir)
	if err != nil {
		log.Error("failed to save uploaded file",
			slog.String("field", field), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save files"))
		return nil, false
	}
	return &file, true
}
