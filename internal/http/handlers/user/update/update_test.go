package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, email string, patch models.UserUpdate) (*models.User, string, error) {
	args := m.Called(ctx, email, patch)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		email          string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:  "успешное обновление перевыпускает cookie",
			email: "user@example.com",
			body:  `{"email": "new@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "user@example.com", mock.Anything).
					Return(&models.User{ID: 1, Email: "new@example.com", IsActive: true}, "signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"new@example.com"`,
			expectCookie:   true,
		},
		{
			name:           "некорректная почта не доходит до сервиса",
			email:          "user@example.com",
			body:           `{"email": "not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Email must be a valid email",
		},
		{
			name:           "слишком короткий пароль",
			email:          "user@example.com",
			body:           `{"password": "123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Password is too short",
		},
		{
			name:           "некорректный JSON",
			email:          "user@example.com",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:  "пользователь не найден",
			email: "user@example.com",
			body:  `{"email": "new@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "user@example.com", mock.Anything).
					Return(nil, "", errs.NotFound("Пользователь не найден"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Пользователь не найден",
		},
		{
			name:           "отсутствует авторизация",
			email:          "",
			body:           `{"email": "new@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/user/update", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.email)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

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
