// Package list реализует HTTP-обработчик получения активных способов оплаты.
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

// Handler обрабатывает запросы на получение списка способов оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка способов оплаты.
type Service interface {
	List(ctx context.Context, email string) ([]*models.PaymentMethod, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить список способов оплаты текущего пользователя
// @Description Возвращает только активные способы оплаты.
// @Tags PaymentMethods
// @Produce  json
// @Success 200 {object} map[string]any "Список способов оплаты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment_method/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentmethod.list"
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

	methods, err := h.service.List(r.Context(), email)
	if err != nil {
		log.Error("failed to list payment methods", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to list payment methods", slog.Int("count", len(methods)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_methods": methods,
	}))
}
