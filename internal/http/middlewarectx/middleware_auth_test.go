package middlewarectx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
)

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	maker := jwt.NewMaker("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := r.Context().Value(User).(string)
		w.Header().Set("X-User", email)
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTMiddleware(maker, logger)(next)

	t.Run("валидный токен пропускается", func(t *testing.T) {
		token, err := maker.CreateToken("user@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/user/info", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user@example.com", w.Header().Get("X-User"))
	})

	t.Run("отсутствие cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/info", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})

	t.Run("повреждённый токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/info", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "not-a-token"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("токен с чужой подписью", func(t *testing.T) {
		foreign := jwt.NewMaker("other-secret", time.Hour)
		token, err := foreign.CreateToken("user@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/user/info", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
