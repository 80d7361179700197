package signup

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

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/services/auth"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, data auth.SignupData) (*models.Profile, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func TestSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			requestBody: Request{
				Username:  "alice",
				Password:  "password1",
				FullName:  "Alice A",
				BirthDate: "1990-01-01",
			},
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.MatchedBy(func(data auth.SignupData) bool {
					return data.Username == "alice" &&
						data.BirthDate != nil &&
						data.BirthDate.Format("2006-01-02") == "1990-01-01"
				})).Return(&models.Profile{
					ID:       "uid-1",
					Username: "alice",
					FullName: "Alice A",
					Role:     "member",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"alice"`,
		},
		{
			name: "занятое имя пользователя",
			requestBody: Request{
				Username: "alice",
				Password: "password1",
			},
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).
					Return(nil, postgres.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"username already taken"}`,
		},
		{
			name: "некорректная дата рождения",
			requestBody: Request{
				Username:  "alice",
				Password:  "password1",
				BirthDate: "01-01-1990",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid birth date"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "невалидные данные",
			requestBody: Request{
				Username: "a!",
				Password: "short",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Username: "alice",
				Password: "password1",
			},
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
