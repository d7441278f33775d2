// Package services вычисляет уведомления о состоянии подписок.
//
// Уведомления нигде не хранятся и никуда не рассылаются: на каждый запрос
// они строятся заново из активных подписок пользователя и текущего времени.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// SubscriptionProvider отдаёт активные подписки пользователя.
type SubscriptionProvider interface {
	ListActiveSubscriptionsByUser(ctx context.Context, userID int) ([]*models.Subscription, error)
}

// UserProvider отдаёт пользователя по почте из токена.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// NotificationService формирует уведомления по активным подпискам.
type NotificationService struct {
	subs  SubscriptionProvider
	users UserProvider
	now   func() time.Time
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(subs SubscriptionProvider, users UserProvider) *NotificationService {
	return &NotificationService{
		subs:  subs,
		users: users,
		now:   time.Now,
	}
}

// List возвращает уведомления по всем активным подпискам пользователя.
func (s *NotificationService) List(ctx context.Context, email string) ([]models.Notification, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Пользователь не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	subscriptions, err := s.subs.ListActiveSubscriptionsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	notifications := make([]models.Notification, 0, len(subscriptions))
	for _, sub := range subscriptions {
		message, err := composeMessage(sub, now)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, models.Notification{
			SubscriptionID: sub.ID,
			Message:        message,
		})
	}
	return notifications, nil
}

// composeMessage строит текст уведомления для одной подписки.
// Количество оставшихся дней никогда не бывает отрицательным:
// для истёкшей подписки оно равно нулю.
func composeMessage(sub *models.Subscription, now time.Time) (string, error) {
	endDate, err := time.Parse(models.DateLayout, sub.EndDate)
	if err != nil {
		return "", fmt.Errorf("parse end date of subscription %d: %w", sub.ID, err)
	}

	daysLeft := int(endDate.Sub(now).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}

	if sub.AutoRenew {
		return fmt.Sprintf("subscription %s will be auto-charged %v in %d days",
			sub.Name, sub.Price, daysLeft), nil
	}
	return fmt.Sprintf("subscription %s expires in %d days", sub.Name, daysLeft), nil
}
