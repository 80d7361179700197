package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/julioo07/tarea-programada-1-BD/internal/lib/jwt"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/password"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/auth"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUser(ctx context.Context, userUID string, upd models.AccountUpdate) (*models.User, error) {
	args := m.Called(ctx, userUID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(repo *UserRepoMock) *auth.Service {
	maker := customjwt.NewMaker("test-secret", time.Hour)
	return auth.New(repo, maker, newNoopLogger())
}

func TestSignup(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newTestService(repo)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Username == "alice" &&
			user.PasswordHash != "" &&
			user.Salt != "" &&
			user.Role == "member"
	})).Return("uid-1", nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:      "uid-1",
		Username: "alice",
		FullName: "Alice A",
		Role:     "member",
	}, nil).Once()

	profile, err := svc.Signup(context.Background(), auth.SignupData{
		Username: "alice",
		Password: "password1",
		FullName: "Alice A",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "member", profile.Role)
	repo.AssertExpectations(t)
}

func TestSignupUsernameTaken(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newTestService(repo)

	repo.On("CreateUser", mock.Anything, mock.Anything).
		Return("", postgres.ErrUsernameTaken).Once()

	_, err := svc.Signup(context.Background(), auth.SignupData{
		Username: "alice",
		Password: "password1",
	})
	assert.ErrorIs(t, err, postgres.ErrUsernameTaken)
	repo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	salt, err := password.NewSalt()
	require.NoError(t, err)
	hash, err := password.GetHash("password1", salt)
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-1",
		Username:     "alice",
		PasswordHash: hash,
		Salt:         salt,
		Role:         "member",
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(user, nil).Once()
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password1",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "nobody").
					Return(nil, postgres.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(user, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := newTestService(repo)

			token, profile, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				repo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, "uid-1", profile.ID)

			// Токен расшифровывается к тому же пользователю.
			maker := customjwt.NewMaker("test-secret", time.Hour)
			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "uid-1", claims.Subject)
			assert.Equal(t, "alice", claims.Username)
			repo.AssertExpectations(t)
		})
	}
}

func TestLoginRepositoryError(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newTestService(repo)

	repo.On("GetUserByUsername", mock.Anything, "alice").
		Return(nil, errors.New("connection refused")).Once()

	_, _, err := svc.Login(context.Background(), "alice", "password1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newTestService(repo)

	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:       "uid-1",
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice A",
		BirthDate: &birth,
		Role:      "member",
	}, nil).Once()

	profile, err := svc.Me(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "1990-01-01", profile.BirthDate)
	repo.AssertExpectations(t)
}

func TestUpdateAccount(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newTestService(repo)

	newName := "Alice B"
	upd := models.AccountUpdate{FullName: &newName}
	repo.On("UpdateUser", mock.Anything, "uid-1", upd).Return(&models.User{
		UID:      "uid-1",
		Username: "alice",
		FullName: "Alice B",
		Role:     "member",
	}, nil).Once()

	profile, err := svc.UpdateAccount(context.Background(), "uid-1", upd)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", profile.FullName)
	repo.AssertExpectations(t)
}
