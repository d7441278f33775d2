package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (subscription_id, amount, status, user_id, open_date, payment_method_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.SubscriptionID, p.Amount, p.Status, p.UserID, p.OpenDate, p.PaymentMethodID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPayment возвращает платёж по ID.
func (s *Storage) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	const op = "storage.GetPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscription_id, amount, status, user_id, open_date, payment_method_id
			  FROM payments
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Payment
	if err := row.Scan(&result.ID, &result.SubscriptionID, &result.Amount,
		&result.Status, &result.UserID, &result.OpenDate, &result.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListPaymentsByUser возвращает все платежи пользователя без фильтрации по подписке.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscription_id, amount, status, user_id, open_date, payment_method_id
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.SubscriptionID, &item.Amount,
			&item.Status, &item.UserID, &item.OpenDate, &item.PaymentMethodID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentStatus перезаписывает статус платежа значением вызывающего.
// Переходы между статусами не проверяются.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id int, status models.PaymentStatus) (int, error) {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
