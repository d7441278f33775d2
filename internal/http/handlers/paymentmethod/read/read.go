// Package read реализует HTTP-обработчик получения способа оплаты по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/http/response"
	"github.com/magabrotheeeer/subscription-system/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// Handler обрабатывает запросы на получение способа оплаты по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения способа оплаты.
type Service interface {
	Read(ctx context.Context, email string, id int) (*models.PaymentMethod, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить способ оплаты по ID
// @Description Возвращает способ оплаты, в том числе деактивированный.
// @Tags PaymentMethods
// @Produce  json
// @Param id path int true "ID способа оплаты"
// @Success 200 {object} map[string]any "Данные способа оплаты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Способ оплаты не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment_method/info/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentmethod.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	method, err := h.service.Read(r.Context(), email, id)
	if err != nil {
		log.Error("failed to read payment method", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to read payment method", slog.Int("id", method.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_method": method,
	}))
}
