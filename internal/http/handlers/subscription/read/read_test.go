package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, email string, id int) (*models.Subscription, error) {
	args := m.Called(ctx, email, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное чтение",
			id:    "5",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user@example.com", 5).
					Return(&models.Subscription{ID: 5, Name: "Netflix", UserID: 1, IsActive: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Netflix"`,
		},
		{
			name:  "подписка не найдена",
			id:    "5",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user@example.com", 5).
					Return(nil, errs.NotFound("Подписка не найдена"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Подписка не найдена",
		},
		{
			name:  "чужая подписка",
			id:    "5",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user@example.com", 5).
					Return(nil, errs.Forbidden("Доступ запрещён"))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Доступ запрещён",
		},
		{
			name:           "некорректный id в url",
			id:             "abc",
			email:          "user@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name:           "отсутствует авторизация",
			id:             "5",
			email:          "",
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

			req := httptest.NewRequest(http.MethodGet, "/subscription/info/"+tt.id, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.email)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
