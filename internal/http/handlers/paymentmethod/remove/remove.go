// Package remove реализует HTTP-обработчик деактивации способа оплаты.
//
// Удаление мягкое: запись остается в системе и продолжает удерживать
// уникальность номера карты.
package remove

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
)

// Handler обрабатывает запросы на деактивацию способа оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики деактивации способа оплаты.
type Service interface {
	Delete(ctx context.Context, email string, id int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить способ оплаты
// @Tags PaymentMethods
// @Produce  json
// @Param id path int true "ID способа оплаты"
// @Success 200 {object} response.Response "Способ оплаты деактивирован"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Способ оплаты не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment_method/delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentmethod.remove"
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

	if err := h.service.Delete(r.Context(), email, id); err != nil {
		log.Error("failed to delete payment method", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to delete payment method", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
