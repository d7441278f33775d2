// Package services содержит бизнес-логику жизненного цикла подписки:
// оформление с вычислением дат, чтение с проверкой владения, частичное
// обновление и одностороннюю отмену, а также кеширование записей.
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

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// GetSubscription возвращает подписку по ID независимо от активности.
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// ListSubscriptionsByUser возвращает все подписки пользователя.
	ListSubscriptionsByUser(ctx context.Context, userID int) ([]*models.Subscription, error)
	// UpdateSubscription сохраняет изменяемые поля подписки.
	UpdateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// CancelSubscription переводит подписку в неактивное состояние.
	CancelSubscription(ctx context.Context, id int) (int, error)
}

// UserProvider отдаёт пользователя по почте из токена.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PaymentMethodProvider разрешает идентификатор способа оплаты.
// Принадлежность способа оплаты вызывающему здесь не проверяется.
type PaymentMethodProvider interface {
	GetPaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo    SubscriptionRepository
	users   UserProvider
	methods PaymentMethodProvider
	cache   Cache
	log     *slog.Logger
	now     func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, users UserProvider,
	methods PaymentMethodProvider, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:    repo,
		users:   users,
		methods: methods,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// Create оформляет подписку для пользователя с почтой email.
// Дата окончания вычисляется один раз: открытие плюс duration дней.
// Автопродление требует разрешимого идентификатора способа оплаты.
func (s *SubscriptionService) Create(ctx context.Context, email string, req models.DummySubscription) (*models.Subscription, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.Conflict("Пользователь не активен")
	}
	if req.AutoRenew && req.PaymentMethodID == nil {
		return nil, errs.NotFound("Метод оплаты не найден")
	}
	if req.PaymentMethodID != nil {
		if _, err := s.methods.GetPaymentMethod(ctx, *req.PaymentMethodID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, errs.NotFound("Метод оплаты не найден")
			}
			return nil, err
		}
	}

	openDate := s.now()
	sub := models.Subscription{
		Name:            req.Name,
		Type:            models.SubscriptionRate(req.Type),
		Price:           req.Price,
		IsActive:        true,
		Duration:        req.Duration,
		AutoRenew:       req.AutoRenew,
		OpenDate:        openDate.Format(models.DateLayout),
		EndDate:         openDate.AddDate(0, 0, req.Duration).Format(models.DateLayout),
		UserID:          user.ID,
		PaymentMethodID: req.PaymentMethodID,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id
	s.log.Info("created new subscription", slog.Int("id", id))

	s.cacheSet(sub)
	return &sub, nil
}

// Read возвращает подписку по ID, если она принадлежит вызывающему.
// Проверка существования всегда предшествует проверке владения.
func (s *SubscriptionService) Read(ctx context.Context, email string, id int) (*models.Subscription, error) {
	sub, err := s.getSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if sub.UserID != user.ID {
		return nil, errs.Forbidden("Доступ запрещён")
	}
	return sub, nil
}

// List возвращает все подписки пользователя, включая отменённые.
func (s *SubscriptionService) List(ctx context.Context, email string) ([]*models.Subscription, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSubscriptionsByUser(ctx, user.ID)
}

// Update применяет к подписке только явно переданные поля.
// Дата окончания не пересчитывается, даже если меняется duration.
func (s *SubscriptionService) Update(ctx context.Context, email string, id int, patch models.SubscriptionUpdate) (*models.Subscription, error) {
	sub, err := s.getSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if sub.UserID != user.ID {
		return nil, errs.Forbidden("Доступ запрещён")
	}
	if !sub.IsActive {
		return nil, errs.Conflict("Подписка отменена")
	}
	if sub.AutoRenew && sub.PaymentMethodID == nil {
		return nil, errs.NotFound("Метод оплаты не найден")
	}
	// Проверяется текущий payment_method_id, а не новый из запроса.
	if patch.PaymentMethodID != nil && sub.PaymentMethodID != nil {
		if _, err := s.methods.GetPaymentMethod(ctx, *sub.PaymentMethodID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, errs.NotFound("Метод оплаты не найден")
			}
			return nil, err
		}
	}

	merge(sub, patch)

	if _, err := s.repo.UpdateSubscription(ctx, *sub); err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))

	s.cacheSet(*sub)
	return sub, nil
}

// Cancel отменяет подписку. Переход односторонний: повторная отмена
// всегда завершается конфликтом.
func (s *SubscriptionService) Cancel(ctx context.Context, email string, id int) error {
	sub, err := s.getSubscription(ctx, id)
	if err != nil {
		return err
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return err
	}
	if sub.UserID != user.ID {
		return errs.Forbidden("Доступ запрещён")
	}
	if !sub.IsActive {
		return errs.Conflict("Подписка уже отменена")
	}

	if _, err := s.repo.CancelSubscription(ctx, id); err != nil {
		return err
	}
	s.log.Info("cancelled subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// merge применяет к подписке только непустые поля патча.
func merge(sub *models.Subscription, patch models.SubscriptionUpdate) {
	if patch.Name != nil {
		sub.Name = *patch.Name
	}
	if patch.Type != nil {
		sub.Type = models.SubscriptionRate(*patch.Type)
	}
	if patch.Price != nil {
		sub.Price = *patch.Price
	}
	if patch.Duration != nil {
		sub.Duration = *patch.Duration
	}
	if patch.AutoRenew != nil {
		sub.AutoRenew = *patch.AutoRenew
	}
	if patch.PaymentMethodID != nil {
		sub.PaymentMethodID = patch.PaymentMethodID
	}
}

func (s *SubscriptionService) getSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	var cached models.Subscription
	cacheKey := fmt.Sprintf("subscription:%d", id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Подписка не найдена")
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	s.cacheSet(*sub)
	return sub, nil
}

func (s *SubscriptionService) getUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Пользователь не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *SubscriptionService) cacheSet(sub models.Subscription) {
	cacheKey := fmt.Sprintf("subscription:%d", sub.ID)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
