package health

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChecker реализует интерфейс health.Checker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockChecker)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "хранилище готово",
			setupMock: func(m *MockChecker) {
				m.On("Ready").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name: "хранилище недоступно",
			setupMock: func(m *MockChecker) {
				m.On("Ready").Return(errors.New("required table users missing"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"Error","error":"storage is not ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockChecker)
			tt.setupMock(checker)

			handler := New(logger, checker)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			checker.AssertExpectations(t)
		})
	}
}
