// Package services содержит бизнес-логику журнала платежей.
//
// Платёж создаётся в статусе CREATED и привязывается к активной подписке
// и активному способу оплаты. Дальнейшие статусы выставляет владелец;
// переходы между статусами не проверяются, это осознанное решение
// уровня API, а не пропущенная проверка.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	// CreatePayment добавляет платёж и возвращает его ID.
	CreatePayment(ctx context.Context, p models.Payment) (int, error)
	// GetPayment возвращает платёж по ID.
	GetPayment(ctx context.Context, id int) (*models.Payment, error)
	// ListPaymentsByUser возвращает все платежи пользователя.
	ListPaymentsByUser(ctx context.Context, userID int) ([]*models.Payment, error)
	// UpdatePaymentStatus перезаписывает статус платежа.
	UpdatePaymentStatus(ctx context.Context, id int, status models.PaymentStatus) (int, error)
}

// UserProvider отдаёт пользователя по почте из токена.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SubscriptionProvider разрешает только активные подписки:
// оплата отменённой подписки выглядит как оплата отсутствующей.
type SubscriptionProvider interface {
	GetActiveSubscription(ctx context.Context, id int) (*models.Subscription, error)
}

// PaymentMethodProvider разрешает только активные способы оплаты.
type PaymentMethodProvider interface {
	GetActivePaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error)
}

// PaymentService реализует операции журнала платежей.
type PaymentService struct {
	repo    PaymentRepository
	users   UserProvider
	subs    SubscriptionProvider
	methods PaymentMethodProvider
	log     *slog.Logger
	now     func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, users UserProvider,
	subs SubscriptionProvider, methods PaymentMethodProvider, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:    repo,
		users:   users,
		subs:    subs,
		methods: methods,
		log:     log,
		now:     time.Now,
	}
}

// Create создаёт платёж в статусе CREATED с текущей датой.
func (s *PaymentService) Create(ctx context.Context, email string, req models.DummyPayment) (*models.Payment, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.subs.GetActiveSubscription(ctx, req.SubscriptionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("Подписка не найдена")
		}
		return nil, err
	}
	if _, err := s.methods.GetActivePaymentMethod(ctx, req.PaymentMethodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("Метод оплаты не найден")
		}
		return nil, err
	}

	p := models.Payment{
		SubscriptionID:  req.SubscriptionID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Status:          models.PaymentCreated,
		OpenDate:        s.now().Format(models.DateLayout),
		UserID:          user.ID,
	}
	id, err := s.repo.CreatePayment(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	s.log.Info("created new payment", slog.Int("id", id))
	return &p, nil
}

// List возвращает все платежи пользователя без фильтрации по подписке.
func (s *PaymentService) List(ctx context.Context, email string) ([]*models.Payment, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPaymentsByUser(ctx, user.ID)
}

// SetStatus перезаписывает статус платежа значением вызывающего.
// Проверка владения идёт после проверки существования.
func (s *PaymentService) SetStatus(ctx context.Context, email string, req models.DummyPaymentStatus) (*models.Payment, error) {
	p, err := s.repo.GetPayment(ctx, req.PaymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Платёж не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if p.UserID != user.ID {
		return nil, errs.Forbidden("Доступ запрещён")
	}

	status := models.PaymentStatus(req.Status)
	if _, err := s.repo.UpdatePaymentStatus(ctx, p.ID, status); err != nil {
		return nil, err
	}
	p.Status = status
	s.log.Info("updated payment status", slog.Int("id", p.ID), slog.String("status", req.Status))
	return p, nil
}

func (s *PaymentService) getUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Пользователь не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
