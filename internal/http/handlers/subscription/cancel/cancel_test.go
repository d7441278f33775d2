package cancel

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
)

// MockService реализует интерфейс cancel.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Cancel(ctx context.Context, email string, id int) error {
	args := m.Called(ctx, email, id)
	return args.Error(0)
}

func TestCancelHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отмена",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Cancel", mock.Anything, "user@example.com", 5).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name: "повторная отмена",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Cancel", mock.Anything, "user@example.com", 5).
					Return(errs.Conflict("Подписка уже отменена"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "Подписка уже отменена",
		},
		{
			name: "подписка не найдена",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Cancel", mock.Anything, "user@example.com", 5).
					Return(errs.NotFound("Подписка не найдена"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Подписка не найдена",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/subscription/cancel/"+tt.id, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.User, "user@example.com")
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
