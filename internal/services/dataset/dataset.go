// Package dataset содержит бизнес-логику каталога датасетов: CRUD с
// кешированием чтения в Redis, поиск и голоса пользователей.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

const (
	// listCacheTTL время жизни кеша списков и карточек датасетов.
	listCacheTTL = 3600 * time.Second
	// searchCacheTTL время жизни кеша поисковых выборок и выборок по владельцу.
	searchCacheTTL = 1800 * time.Second
)

// DatasetRepository определяет методы для работы с датасетами в хранилище.
type DatasetRepository interface {
	Insert(ctx context.Context, dataset models.Dataset) error
	FindByID(ctx context.Context, idDataset string) (*models.Dataset, error)
	FindAll(ctx context.Context) ([]*models.Dataset, error)
	FindByOwner(ctx context.Context, idUsuario string) ([]*models.Dataset, error)
	SearchByName(ctx context.Context, nombre string) ([]*models.Dataset, error)
	Update(ctx context.Context, idDataset string, upd models.DatasetUpdate) (*models.Dataset, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidatePattern(ctx context.Context, pattern string) (int, error)
}

// VoteStore хранит голоса пользователей за датасеты.
type VoteStore interface {
	SetVote(ctx context.Context, userID, datasetID string, vote int) error
	Vote(ctx context.Context, userID, datasetID string) (int, bool, error)
	Votes(ctx context.Context, userID string) (map[string]int, error)
}

// CreateData содержит данные нового датасета вместе с уже сохранёнными файлами.
// FechaInclusion nil означает, что дата включения берётся текущей.
type CreateData struct {
	Nombre          string
	Descripcion     string
	FechaInclusion  *time.Time
	Avatar          *models.DatasetFile
	FotoRepositorio *models.DatasetFile
	Archivos        []models.DatasetFile
	VideosGuia      []models.DatasetFile
}

// Service реализует бизнес-логику каталога датасетов, включая кеширование.
type Service struct {
	repo  DatasetRepository
	cache Cache
	votes VoteStore
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo DatasetRepository, cache Cache, votes VoteStore, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		votes: votes,
		log:   log,
	}
}

// Create создаёт датасет со свежим id и статусом "activo" и сбрасывает
// затронутые кеши. Дата включения берётся из данных или текущая.
func (s *Service) Create(ctx context.Context, ownerUID string, data CreateData) (*models.Dataset, error) {
	const op = "dataset.Create"

	now := time.Now().UTC()
	inclusion := now
	if data.FechaInclusion != nil {
		inclusion = *data.FechaInclusion
	}
	dataset := models.Dataset{
		IDDataset:          uuid.New().String(),
		IDUsuario:          ownerUID,
		Nombre:             data.Nombre,
		Descripcion:        data.Descripcion,
		FechaInclusion:     inclusion,
		FechaActualizacion: now,
		Estado:             "activo",
		Avatar:             data.Avatar,
		FotoRepositorio:    data.FotoRepositorio,
		Archivos:           data.Archivos,
		VideosGuia:         data.VideosGuia,
	}
	if err := s.repo.Insert(ctx, dataset); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new dataset", slog.String("id", dataset.IDDataset))

	s.invalidateListCaches(ctx, ownerUID)
	return &dataset, nil
}

// Read возвращает датасет по id, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, idDataset string) (*models.Dataset, error) {
	const op = "dataset.Read"

	var cached *models.Dataset
	cacheKey := "datasets:" + idDataset
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read dataset cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.FindByID(ctx, idDataset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, cacheKey, result, listCacheTTL); err != nil {
		s.log.Warn("failed to cache dataset", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает все датасеты, используя кеш или репозиторий.
func (s *Service) List(ctx context.Context) ([]*models.Dataset, error) {
	const op = "dataset.List"
	return s.cachedList(ctx, op, "datasets:all", listCacheTTL, func() ([]*models.Dataset, error) {
		return s.repo.FindAll(ctx)
	})
}

// ListByOwner возвращает датасеты пользователя, используя кеш или репозиторий.
func (s *Service) ListByOwner(ctx context.Context, ownerUID string) ([]*models.Dataset, error) {
	const op = "dataset.ListByOwner"
	return s.cachedList(ctx, op, "user_datasets:"+ownerUID, searchCacheTTL, func() ([]*models.Dataset, error) {
		return s.repo.FindByOwner(ctx, ownerUID)
	})
}

// Search ищет датасеты по подстроке имени без учёта регистра.
func (s *Service) Search(ctx context.Context, nombre string) ([]*models.Dataset, error) {
	const op = "dataset.Search"
	return s.cachedList(ctx, op, "datasets:search:"+nombre, searchCacheTTL, func() ([]*models.Dataset, error) {
		return s.repo.SearchByName(ctx, nombre)
	})
}

// Update частично обновляет датасет, освежает fecha_actualizacion
// и сбрасывает затронутые кеши.
func (s *Service) Update(ctx context.Context, idDataset string, upd models.DatasetUpdate) (*models.Dataset, error) {
	const op = "dataset.Update"

	updated, err := s.repo.Update(ctx, idDataset, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated dataset", slog.String("id", idDataset))

	if err := s.cache.Invalidate(ctx, "datasets:"+idDataset); err != nil {
		s.log.Warn("failed to invalidate dataset cache", sl.Err(err))
	}
	s.invalidateListCaches(ctx, updated.IDUsuario)
	return updated, nil
}

// SetVote сохраняет голос пользователя за датасет, перезаписывая прежний.
func (s *Service) SetVote(ctx context.Context, userUID, idDataset string, vote int) error {
	const op = "dataset.SetVote"

	// Голос принимается только за существующий датасет.
	if _, err := s.repo.FindByID(ctx, idDataset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.votes.SetVote(ctx, userUID, idDataset, vote); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Vote возвращает голос пользователя за датасет и признак его наличия.
func (s *Service) Vote(ctx context.Context, userUID, idDataset string) (int, bool, error) {
	const op = "dataset.Vote"

	vote, found, err := s.votes.Vote(ctx, userUID, idDataset)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return vote, found, nil
}

// Votes возвращает все голоса пользователя.
func (s *Service) Votes(ctx context.Context, userUID string) (map[string]int, error) {
	const op = "dataset.Votes"

	votes, err := s.votes.Votes(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return votes, nil
}

func (s *Service) cachedList(ctx context.Context, op, cacheKey string,
	ttl time.Duration, load func() ([]*models.Dataset, error)) ([]*models.Dataset, error) {
	var cached []*models.Dataset
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read dataset cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, cacheKey, result, ttl); err != nil {
		s.log.Warn("failed to cache dataset list", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

func (s *Service) invalidateListCaches(ctx context.Context, ownerUID string) {
	if err := s.cache.Invalidate(ctx, "datasets:all"); err != nil {
		s.log.Warn("failed to invalidate dataset list cache", sl.Err(err))
	}
	if err := s.cache.Invalidate(ctx, "user_datasets:"+ownerUID); err != nil {
		s.log.Warn("failed to invalidate owner dataset cache", sl.Err(err))
	}
	if _, err := s.cache.InvalidatePattern(ctx, "datasets:search:*"); err != nil {
		s.log.Warn("failed to invalidate dataset search cache", sl.Err(err))
	}
}
