package dataset_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/dataset"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/mongodb"
)

type DatasetRepoMock struct {
	mock.Mock
}

func (m *DatasetRepoMock) Insert(ctx context.Context, ds models.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *DatasetRepoMock) FindByID(ctx context.Context, idDataset string) (*models.Dataset, error) {
	args := m.Called(ctx, idDataset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *DatasetRepoMock) FindAll(ctx context.Context) ([]*models.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Dataset), args.Error(1)
}

func (m *DatasetRepoMock) FindByOwner(ctx context.Context, idUsuario string) ([]*models.Dataset, error) {
	args := m.Called(ctx, idUsuario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Dataset), args.Error(1)
}

func (m *DatasetRepoMock) SearchByName(ctx context.Context, nombre string) ([]*models.Dataset, error) {
	args := m.Called(ctx, nombre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Dataset), args.Error(1)
}

func (m *DatasetRepoMock) Update(ctx context.Context, idDataset string, upd models.DatasetUpdate) (*models.Dataset, error) {
	args := m.Called(ctx, idDataset, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *CacheMock) InvalidatePattern(ctx context.Context, pattern string) (int, error) {
	args := m.Called(ctx, pattern)
	return args.Int(0), args.Error(1)
}

type VoteStoreMock struct {
	mock.Mock
}

func (m *VoteStoreMock) SetVote(ctx context.Context, userID, datasetID string, vote int) error {
	args := m.Called(ctx, userID, datasetID, vote)
	return args.Error(0)
}

func (m *VoteStoreMock) Vote(ctx context.Context, userID, datasetID string) (int, bool, error) {
	args := m.Called(ctx, userID, datasetID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *VoteStoreMock) Votes(ctx context.Context, userID string) (map[string]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func expectListInvalidation(cache *CacheMock, ownerUID string) {
	cache.On("Invalidate", mock.Anything, "datasets:all").Return(nil).Once()
	cache.On("Invalidate", mock.Anything, "user_datasets:"+ownerUID).Return(nil).Once()
	cache.On("InvalidatePattern", mock.Anything, "datasets:search:*").Return(0, nil).Once()
}

func TestCreate(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(ds models.Dataset) bool {
		return ds.IDDataset != "" &&
			ds.IDUsuario == "uid-1" &&
			ds.Nombre == "iris" &&
			ds.Estado == "activo" &&
			!ds.FechaInclusion.IsZero() &&
			ds.FechaActualizacion.Equal(ds.FechaInclusion)
	})).Return(nil).Once()
	expectListInvalidation(cache, "uid-1")

	created, err := svc.Create(context.Background(), "uid-1", dataset.CreateData{
		Nombre:      "iris",
		Descripcion: "flower measurements",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.IDDataset)
	assert.Equal(t, "activo", created.Estado)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateWithSuppliedDate(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	fecha := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(ds models.Dataset) bool {
		return ds.FechaInclusion.Equal(fecha) &&
			!ds.FechaActualizacion.Equal(fecha)
	})).Return(nil).Once()
	expectListInvalidation(cache, "uid-1")

	created, err := svc.Create(context.Background(), "uid-1", dataset.CreateData{
		Nombre:         "iris",
		FechaInclusion: &fecha,
	})
	require.NoError(t, err)
	assert.True(t, created.FechaInclusion.Equal(fecha))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReadCacheMiss(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	expected := &models.Dataset{IDDataset: "ds-1", Nombre: "iris"}
	cache.On("Get", mock.Anything, "datasets:ds-1", mock.Anything).Return(false, nil).Once()
	repo.On("FindByID", mock.Anything, "ds-1").Return(expected, nil).Once()
	cache.On("Set", mock.Anything, "datasets:ds-1", expected, 3600*time.Second).Return(nil).Once()

	got, err := svc.Read(context.Background(), "ds-1")
	require.NoError(t, err)
	assert.Equal(t, expected, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReadCacheHit(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	cache.On("Get", mock.Anything, "datasets:ds-1", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(**models.Dataset)
			*out = &models.Dataset{IDDataset: "ds-1", Nombre: "iris"}
		}).Return(true, nil).Once()

	got, err := svc.Read(context.Background(), "ds-1")
	require.NoError(t, err)
	assert.Equal(t, "iris", got.Nombre)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestReadNotFound(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	cache.On("Get", mock.Anything, "datasets:ds-missing", mock.Anything).Return(false, nil).Once()
	repo.On("FindByID", mock.Anything, "ds-missing").
		Return(nil, mongodb.ErrDatasetNotFound).Once()

	_, err := svc.Read(context.Background(), "ds-missing")
	assert.ErrorIs(t, err, mongodb.ErrDatasetNotFound)
}

func TestSearchCachesResult(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	expected := []*models.Dataset{{IDDataset: "ds-1", Nombre: "iris"}}
	cache.On("Get", mock.Anything, "datasets:search:iri", mock.Anything).Return(false, nil).Once()
	repo.On("SearchByName", mock.Anything, "iri").Return(expected, nil).Once()
	cache.On("Set", mock.Anything, "datasets:search:iri", expected, 1800*time.Second).Return(nil).Once()

	got, err := svc.Search(context.Background(), "iri")
	require.NoError(t, err)
	assert.Equal(t, expected, got)
	cache.AssertExpectations(t)
}

func TestUpdateInvalidatesCaches(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	newName := "iris v2"
	upd := models.DatasetUpdate{Nombre: &newName}
	updated := &models.Dataset{IDDataset: "ds-1", IDUsuario: "uid-1", Nombre: "iris v2"}

	repo.On("Update", mock.Anything, "ds-1", upd).Return(updated, nil).Once()
	cache.On("Invalidate", mock.Anything, "datasets:ds-1").Return(nil).Once()
	expectListInvalidation(cache, "uid-1")

	got, err := svc.Update(context.Background(), "ds-1", upd)
	require.NoError(t, err)
	assert.Equal(t, "iris v2", got.Nombre)
	cache.AssertExpectations(t)
}

func TestSetVoteUnknownDataset(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	repo.On("FindByID", mock.Anything, "ds-missing").
		Return(nil, mongodb.ErrDatasetNotFound).Once()

	err := svc.SetVote(context.Background(), "uid-1", "ds-missing", 5)
	assert.ErrorIs(t, err, mongodb.ErrDatasetNotFound)
	votes.AssertNotCalled(t, "SetVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetVote(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	repo.On("FindByID", mock.Anything, "ds-1").
		Return(&models.Dataset{IDDataset: "ds-1"}, nil).Once()
	votes.On("SetVote", mock.Anything, "uid-1", "ds-1", 4).Return(nil).Once()

	err := svc.SetVote(context.Background(), "uid-1", "ds-1", 4)
	require.NoError(t, err)
	votes.AssertExpectations(t)
}

func TestVotes(t *testing.T) {
	repo := new(DatasetRepoMock)
	cache := new(CacheMock)
	votes := new(VoteStoreMock)
	svc := dataset.New(repo, cache, votes, newNoopLogger())

	votes.On("Votes", mock.Anything, "uid-1").
		Return(map[string]int{"ds-1": 4}, nil).Once()

	got, err := svc.Votes(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ds-1": 4}, got)
}
