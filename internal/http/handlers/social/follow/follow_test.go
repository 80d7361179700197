package follow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/social"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// MockService реализует интерфейс follow.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Follow(ctx context.Context, followerUID, targetUID string) error {
	args := m.Called(ctx, followerUID, targetUID)
	return args.Error(0)
}

func TestFollowHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная подписка",
			requestBody: Request{TargetID: "uid-2"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Follow", mock.Anything, "uid-1", "uid-2").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"following":true`,
		},
		{
			name:        "подписка на себя",
			requestBody: Request{TargetID: "uid-1"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Follow", mock.Anything, "uid-1", "uid-1").
					Return(social.ErrSelfFollow)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"cannot follow yourself"}`,
		},
		{
			name:        "несуществующий пользователь",
			requestBody: Request{TargetID: "uid-missing"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Follow", mock.Anything, "uid-1", "uid-missing").
					Return(postgres.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:           "пустой targetId",
			requestBody:    Request{},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"targetId is required"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    Request{TargetID: "uid-2"},
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{TargetID: "uid-2"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Follow", mock.Anything, "uid-1", "uid-2").
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not follow user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/follow", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
