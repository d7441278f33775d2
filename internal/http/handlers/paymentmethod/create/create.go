// Package create реализует HTTP-обработчик добавления способа оплаты.
//
// Номер карты уникален во всей системе: совпадение даже с деактивированным
// способом оплаты другого пользователя приводит к конфликту.
package create

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

// Handler управляет HTTP-запросами на добавление способов оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики способов оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления способа оплаты.
type Service interface {
	Create(ctx context.Context, email string, req models.DummyPaymentMethod) (*models.PaymentMethod, error)
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
// @Summary Добавить способ оплаты
// @Tags PaymentMethods
// @Accept  json
// @Produce  json
// @Param request body models.DummyPaymentMethod true "Данные способа оплаты"
// @Success 200 {object} map[string]any "Созданный способ оплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Способ оплаты с таким номером карты уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment_method/new [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentmethod.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentMethod
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
	log.Info("all fields are validated")

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	method, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		log.Error("failed to create payment method", sl.Err(err))
		response.Err(w, r, err)
		return
	}

	log.Info("success to create payment method", slog.Int("id", method.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_method": method,
	}))
}
