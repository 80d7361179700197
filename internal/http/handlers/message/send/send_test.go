package send

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
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// MockService реализует интерфейс send.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func TestSendHandler(t *testing.T) {
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
			name:        "успешная отправка",
			requestBody: Request{ReceiverID: "uid-2", Message: "hi"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Send", mock.Anything, "uid-1", "uid-2", "hi").Return(&models.Message{
					ID:         "1700000000000",
					SenderID:   "uid-1",
					ReceiverID: "uid-2",
					Message:    "hi",
					Timestamp:  time.Now().UTC(),
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"hi"`,
		},
		{
			name:           "сообщение себе",
			requestBody:    Request{ReceiverID: "uid-1", Message: "hi"},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"cannot message yourself"}`,
		},
		{
			name:           "пустой текст",
			requestBody:    Request{ReceiverID: "uid-2"},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Message is a required field`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    Request{ReceiverID: "uid-2", Message: "hi"},
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{ReceiverID: "uid-2", Message: "hi"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Send", mock.Anything, "uid-1", "uid-2", "hi").
					Return(nil, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not send message"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body))
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
