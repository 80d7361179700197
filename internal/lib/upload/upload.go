// Package upload сохраняет файлы из multipart-запросов в локальный каталог
// загрузок и возвращает метаданные для записи в каталог датасетов.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Saver сохраняет загруженные файлы под каталогом baseDir.
type Saver struct {
	baseDir string
}

// NewSaver создает Saver и каталог загрузок, если его еще нет.
func NewSaver(baseDir string) (*Saver, error) {
	const op = "upload.NewSaver"
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Saver{baseDir: baseDir}, nil
}

// Save записывает один файл в подкаталог subdir под новым uuid-именем,
// сохраняя расширение оригинала. Возвращает метаданные файла: имя,
// относительный путь, заявленный MIME-тип и размер в байтах.
func (s *Saver) Save(fh *multipart.FileHeader, subdir string) (models.DatasetFile, error) {
	const op = "upload.Save"

	src, err := fh.Open()
	if err != nil {
		return models.DatasetFile{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = src.Close()
	}()

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	relPath := filepath.Join(subdir, name)

	if err := os.MkdirAll(filepath.Join(s.baseDir, subdir), 0o755); err != nil {
		return models.DatasetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	dst, err := os.Create(filepath.Join(s.baseDir, relPath))
	if err != nil {
		return models.DatasetFile{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = dst.Close()
	}()

	written, err := io.Copy(dst, src)
	if err != nil {
		return models.DatasetFile{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.DatasetFile{
		Nombre:   name,
		Ruta:     relPath,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     written,
	}, nil
}

// SaveAll сохраняет список файлов в один подкаталог.
func (s *Saver) SaveAll(fhs []*multipart.FileHeader, subdir string) ([]models.DatasetFile, error) {
	var files []models.DatasetFile
	for _, fh := range fhs {
		file, err := s.Save(fh, subdir)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
