package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// CreateSubscription вставляет новую запись подписки и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (name, type, price, is_active, duration,
			      auto_renew, open_date, end_date, user_id, payment_method_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Type, sub.Price, sub.IsActive, sub.Duration,
		sub.AutoRenew, sub.OpenDate, sub.EndDate, sub.UserID, sub.PaymentMethodID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscription возвращает подписку по ID независимо от её активности.
func (s *Storage) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, type, price, is_active, duration, auto_renew,
			      open_date, end_date, user_id, payment_method_id
			  FROM subscriptions
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.Name, &result.Type, &result.Price,
		&result.IsActive, &result.Duration, &result.AutoRenew,
		&result.OpenDate, &result.EndDate, &result.UserID, &result.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetActiveSubscription возвращает активную подписку по ID.
// Отменённая подписка неотличима от отсутствующей.
func (s *Storage) GetActiveSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, type, price, is_active, duration, auto_renew,
			      open_date, end_date, user_id, payment_method_id
			  FROM subscriptions
			  WHERE id = $1 AND is_active = TRUE`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.Name, &result.Type, &result.Price,
		&result.IsActive, &result.Duration, &result.AutoRenew,
		&result.OpenDate, &result.EndDate, &result.UserID, &result.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSubscriptionsByUser возвращает все подписки пользователя,
// включая отменённые, в порядке создания.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userID int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, type, price, is_active, duration, auto_renew,
			      open_date, end_date, user_id, payment_method_id
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY id`
	return s.listSubscriptions(ctx, op, query, userID)
}

// ListActiveSubscriptionsByUser возвращает только активные подписки пользователя.
func (s *Storage) ListActiveSubscriptionsByUser(ctx context.Context, userID int) ([]*models.Subscription, error) {
	const op = "storage.ListActiveSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, type, price, is_active, duration, auto_renew,
			      open_date, end_date, user_id, payment_method_id
			  FROM subscriptions
			  WHERE user_id = $1 AND is_active = TRUE
			  ORDER BY id`
	return s.listSubscriptions(ctx, op, query, userID)
}

func (s *Storage) listSubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Price,
			&item.IsActive, &item.Duration, &item.AutoRenew,
			&item.OpenDate, &item.EndDate, &item.UserID, &item.PaymentMethodID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription сохраняет изменяемые поля подписки и возвращает
// количество обновлённых строк. Даты и признак активности не трогаются.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, type = $2, price = $3, duration = $4,
			      auto_renew = $5, payment_method_id = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Name, sub.Type, sub.Price, sub.Duration,
		sub.AutoRenew, sub.PaymentMethodID, sub.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CancelSubscription переводит подписку в неактивное состояние.
// Обратного перехода нет.
func (s *Storage) CancelSubscription(ctx context.Context, id int) (int, error) {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = FALSE
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
