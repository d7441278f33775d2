// Package logout реализует HTTP-обработчик выхода из системы.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-system/internal/http/cookie"
	"github.com/magabrotheeeer/subscription-system/internal/http/response"
)

// Handler управляет HTTP-запросами на выход из системы.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Сбрасывает сессионную cookie. Выполняется без проверки токена.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response "Выход выполнен"
// @Router /user/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie.Clear(w)
	log.Info("session cookie cleared")
	render.JSON(w, r, response.OK())
}
