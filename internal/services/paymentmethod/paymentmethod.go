// Package services содержит бизнес-логику реестра способов оплаты:
// добавление с контролем уникальности номера карты, чтение с проверкой
// владения, частичное обновление и мягкое удаление.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
	"github.com/magabrotheeeer/subscription-system/internal/storage/repository"
)

// PaymentMethodRepository определяет методы для работы со способами оплаты в хранилище.
type PaymentMethodRepository interface {
	// CreatePaymentMethod добавляет способ оплаты и возвращает его ID.
	CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (int, error)
	// GetPaymentMethod возвращает способ оплаты независимо от активности.
	GetPaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error)
	// GetActivePaymentMethod возвращает только активный способ оплаты.
	GetActivePaymentMethod(ctx context.Context, id int) (*models.PaymentMethod, error)
	// ListActivePaymentMethodsByUser возвращает активные способы оплаты пользователя.
	ListActivePaymentMethodsByUser(ctx context.Context, userID int) ([]*models.PaymentMethod, error)
	// UpdatePaymentMethod сохраняет изменяемые поля способа оплаты.
	UpdatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (int, error)
	// DeactivatePaymentMethod мягко удаляет способ оплаты.
	DeactivatePaymentMethod(ctx context.Context, id int) (int, error)
}

// UserProvider отдаёт пользователя по почте из токена.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PaymentMethodService реализует операции реестра способов оплаты.
type PaymentMethodService struct {
	repo  PaymentMethodRepository
	users UserProvider
	log   *slog.Logger
}

// NewPaymentMethodService создает новый экземпляр PaymentMethodService.
func NewPaymentMethodService(repo PaymentMethodRepository, users UserProvider, log *slog.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		repo:  repo,
		users: users,
		log:   log,
	}
}

// Create добавляет способ оплаты текущему пользователю.
// Номер карты уникален среди всех строк, включая деактивированные.
func (s *PaymentMethodService) Create(ctx context.Context, email string, req models.DummyPaymentMethod) (*models.PaymentMethod, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	pm := models.PaymentMethod{
		Type:       req.Type,
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
		IsActive:   true,
		UserID:     user.ID,
	}
	id, err := s.repo.CreatePaymentMethod(ctx, pm)
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, errs.Conflict("Способ оплаты с таким номером карты уже существует")
	}
	if err != nil {
		return nil, err
	}
	pm.ID = id
	s.log.Info("created new payment method", slog.Int("id", id))
	return &pm, nil
}

// Read возвращает способ оплаты по ID, если он принадлежит вызывающему.
// Находит и деактивированные строки; проверка владения идёт после
// проверки существования.
func (s *PaymentMethodService) Read(ctx context.Context, email string, id int) (*models.PaymentMethod, error) {
	pm, err := s.repo.GetPaymentMethod(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Способ оплаты не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if pm.UserID != user.ID {
		return nil, errs.Forbidden("Доступ запрещён")
	}
	return pm, nil
}

// List возвращает только активные способы оплаты пользователя.
func (s *PaymentMethodService) List(ctx context.Context, email string) ([]*models.PaymentMethod, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListActivePaymentMethodsByUser(ctx, user.ID)
}

// Update применяет к способу оплаты только явно переданные поля.
// Деактивированный идентификатор неотличим от отсутствующего.
func (s *PaymentMethodService) Update(ctx context.Context, email string, id int, patch models.PaymentMethodUpdate) (*models.PaymentMethod, error) {
	pm, err := s.getActive(ctx, email, id)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		pm.Type = *patch.Type
	}
	if patch.CardNumber != nil {
		pm.CardNumber = *patch.CardNumber
	}
	if patch.ExpiryDate != nil {
		pm.ExpiryDate = *patch.ExpiryDate
	}
	if patch.CVV != nil {
		pm.CVV = *patch.CVV
	}

	_, err = s.repo.UpdatePaymentMethod(ctx, *pm)
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, errs.Conflict("Способ оплаты с таким номером карты уже существует")
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("updated payment method", slog.Int("id", id))
	return pm, nil
}

// Delete мягко удаляет способ оплаты: строка остаётся, is_active
// становится false. Повторное удаление завершается NotFound, потому что
// поиск идёт только по активным строкам.
func (s *PaymentMethodService) Delete(ctx context.Context, email string, id int) error {
	pm, err := s.getActive(ctx, email, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.DeactivatePaymentMethod(ctx, pm.ID); err != nil {
		return err
	}
	s.log.Info("deactivated payment method", slog.Int("id", id))
	return nil
}

func (s *PaymentMethodService) getActive(ctx context.Context, email string, id int) (*models.PaymentMethod, error) {
	pm, err := s.repo.GetActivePaymentMethod(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Способ оплаты не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if pm.UserID != user.ID {
		return nil, errs.Forbidden("Доступ запрещён")
	}
	return pm, nil
}

func (s *PaymentMethodService) getUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Пользователь не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
