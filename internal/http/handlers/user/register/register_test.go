package register

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "успешная регистрация",
			requestBody: models.DummyUser{Email: "new@example.com", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "new@example.com", "password123").
					Return(&models.User{ID: 1, Email: "new@example.com", IsActive: true}, "signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"new@example.com"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "невалидная почта",
			requestBody:    models.DummyUser{Email: "not-an-email", Password: "password123"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:           "короткий пароль",
			requestBody:    models.DummyUser{Email: "new@example.com", Password: "123"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is too short`,
		},
		{
			name:        "пользователь уже существует",
			requestBody: models.DummyUser{Email: "taken@example.com", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "taken@example.com", "password123").
					Return(nil, "", errs.Conflict("Пользователь уже существует"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `Пользователь уже существует`,
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
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/user/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				assert.Len(t, cookies, 1)
				assert.Equal(t, cookie.Name, cookies[0].Name)
				assert.Equal(t, "signed-token", cookies[0].Value)
			}

			mockService.AssertExpectations(t)
		})
	}
}
