// Package list реализует HTTP-обработчик получения уведомлений пользователя.
//
// Уведомления вычисляются на лету по активным подпискам и нигде не хранятся.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/http/response"
	"github.com/magabrotheeeer/subscription-system/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// Handler обрабатывает запросы на получение уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики вычисления уведомлений.
type Service interface {
	List(ctx context.Context, email string) ([]models.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить уведомления по активным подпискам
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Список уведомлений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notification/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	notifications, err := h.service.List(r.Context(), email)
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to list notifications", slog.Int("count", len(notifications)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notifications": notifications,
	}))
}
