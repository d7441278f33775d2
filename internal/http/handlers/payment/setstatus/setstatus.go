// Package setstatus реализует HTTP-обработчик смены статуса платежа.
//
// Переходы между статусами не ограничены: новый статус перезаписывает
// текущий без проверки предыдущего значения.
package setstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/http/response"
	"github.com/magabrotheeeer/subscription-system/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// Handler обрабатывает запросы на смену статуса платежа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики платежей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики смены статуса платежа.
type Service interface {
	SetStatus(ctx context.Context, email string, req models.DummyPaymentStatus) (*models.Payment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить статус платежа
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPaymentStatus true "ID платежа и новый статус"
// @Success 200 {object} map[string]any "Обновленный платеж"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} response.ErrorResponse "Платёж не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment/set_status [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.setstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	payment, err := h.service.SetStatus(r.Context(), email, req)
	if err != nil {
		log.Error("failed to set payment status", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to set payment status",
		slog.Int("id", payment.ID), slog.String("status", string(payment.Status)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment": payment,
	}))
}
