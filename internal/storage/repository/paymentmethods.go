package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// CreatePaymentMethod вставляет новый способ оплаты и возвращает его ID.
// Дубликат номера карты среди любых строк отдаётся как ErrUniqueViolation.
func (s *Storage) CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (int, error) {
	const op = "storage.CreatePaymentMethod"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_methods (type, card_number, expiry_date, cvv, is_active, user_id)
			  VALUES ($1, $2, $3, $4, TRUE, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		pm.Type, pm.CardNumber, pm.ExpiryDate, pm.CVV, pm.UserID).Scan(&newID)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return newID, nil
}

// GetPaymentMethod возвращает способ оплаты по ID независимо от активности.
func (s *Storage) GetPaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error) {
	const op = "storage.GetPaymentMethod"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, card_number, expiry_date, cvv, is_active, user_id
			  FROM payment_methods
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.PaymentMethod
	if err := row.Scan(&result.ID, &result.Type, &result.CardNumber,
		&result.ExpiryDate, &result.CVV, &result.IsActive, &result.UserID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetActivePaymentMethod возвращает активный способ оплаты по ID.
// Деактивированная строка неотличима от отсутствующей.
func (s *Storage) GetActivePaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error) {
	const op = "storage.GetActivePaymentMethod"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, card_number, expiry_date, cvv, is_active, user_id
			  FROM payment_methods
			  WHERE id = $1 AND is_active = TRUE`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.PaymentMethod
	if err := row.Scan(&result.ID, &result.Type, &result.CardNumber,
		&result.ExpiryDate, &result.CVV, &result.IsActive, &result.UserID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListActivePaymentMethodsByUser возвращает активные способы оплаты пользователя.
func (s *Storage) ListActivePaymentMethodsByUser(ctx context.Context, userID int) ([]*models.PaymentMethod, error) {
	const op = "storage.ListActivePaymentMethodsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, card_number, expiry_date, cvv, is_active, user_id
			  FROM payment_methods
			  WHERE user_id = $1 AND is_active = TRUE
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentMethod
	for rows.Next() {
		var item models.PaymentMethod
		if err := rows.Scan(&item.ID, &item.Type, &item.CardNumber,
			&item.ExpiryDate, &item.CVV, &item.IsActive, &item.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePaymentMethod сохраняет изменяемые поля способа оплаты и возвращает
// количество обновлённых строк. Коллизия номера карты отдаётся как
// ErrUniqueViolation.
func (s *Storage) UpdatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (int, error) {
	const op = "storage.UpdatePaymentMethod"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payment_methods
			  SET type = $1, card_number = $2, expiry_date = $3, cvv = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		pm.Type, pm.CardNumber, pm.ExpiryDate, pm.CVV, pm.ID)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeactivatePaymentMethod мягко удаляет способ оплаты.
func (s *Storage) DeactivatePaymentMethod(ctx context.Context, id int) (int, error) {
	const op = "storage.DeactivatePaymentMethod"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payment_methods
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
