// Package middlewarectx содержит HTTP middleware для проверки токена доступа.
//
// JWTMiddleware разбирает токен из сессионной cookie и при успехе кладёт
// почту пользователя в контекст запроса для дальнейшего использования
// в обработчиках. Любая причина отказа — отсутствие cookie, просроченный
// или повреждённый токен — приводит к одинаковому HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/http/response"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-system/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для почты пользователя в контексте.
const User Key = "mail"

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// из сессионной cookie.
//
// Если токен валиден, добавляет почту пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := cookie.Token(r)
			if tokenStr == "" {
				log.Error("missing session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Mail)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
