package login

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
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("успешный вход устанавливает cookie", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Login", mock.Anything, "user@example.com", "password123").
			Return("signed-token", nil)

		handler := New(logger, mockService)
		body, err := json.Marshal(models.DummyUser{Email: "user@example.com", Password: "password123"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		// Первая cookie — сброс старой сессии, вторая — свежий токен.
		require.Len(t, cookies, 2)
		assert.Equal(t, cookie.Name, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
		assert.Equal(t, cookie.Name, cookies[1].Name)
		assert.Equal(t, "signed-token", cookies[1].Value)
	})

	t.Run("неверный пароль сбрасывает cookie", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Login", mock.Anything, "user@example.com", "wrong-pass").
			Return("", errs.Unauthorized("Неверный пароль"))

		handler := New(logger, mockService)
		body, err := json.Marshal(models.DummyUser{Email: "user@example.com", Password: "wrong-pass"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Неверный пароль")
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Login", mock.Anything, "ghost@example.com", "password123").
			Return("", errs.NotFound("Пользователь не найден"))

		handler := New(logger, mockService)
		body, err := json.Marshal(models.DummyUser{Email: "ghost@example.com", Password: "password123"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
