package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/subscription-system/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов общим
// token-bucket лимитером.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(10, 20)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
