// Package services содержит бизнес-логику работы с пользователями:
// регистрацию, авторизацию, чтение, частичное обновление и удаление
// учётной записи, а также выпуск токенов доступа.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-system/internal/lib/password"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, email, passwordHash string) (int, error)
	// GetUserByEmail возвращает пользователя по почте;
	// отсутствие строки оборачивает sql.ErrNoRows.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUser сохраняет изменяемые поля пользователя.
	UpdateUser(ctx context.Context, user models.User) (int, error)
	// DeleteUser жёстко удаляет пользователя.
	DeleteUser(ctx context.Context, id int) (int, error)
}

// UserService реализует операции над учётной записью текущего пользователя.
type UserService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает пользователя с хэшированным паролем и выпускает токен доступа.
// Повторная регистрация почты отклоняется конфликтом.
func (s *UserService) Register(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", errs.Conflict("Пользователь уже существует")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	id, err := s.users.CreateUser(ctx, email, hashed)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("registered new user", slog.Int("id", id))

	token, err := s.jwtMaker.CreateToken(email)
	if err != nil {
		return nil, "", err
	}
	return &models.User{ID: id, Email: email, IsActive: true}, token, nil
}

// Login проверяет пароль пользователя и выпускает токен доступа.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", errs.Unauthorized("Неверный пароль")
	}
	return s.jwtMaker.CreateToken(user.Email)
}

// Info возвращает данные текущего пользователя.
func (s *UserService) Info(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}

// List возвращает всех зарегистрированных пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// Update применяет к пользователю только явно переданные поля и выпускает
// свежий токен: почта могла измениться.
func (s *UserService) Update(ctx context.Context, email string, patch models.UserUpdate) (*models.User, string, error) {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hashed, err := password.GetHash(*patch.Password)
		if err != nil {
			return nil, "", err
		}
		user.PasswordHash = hashed
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if _, err := s.users.UpdateUser(ctx, *user); err != nil {
		return nil, "", err
	}
	s.log.Info("updated user", slog.Int("id", user.ID))

	token, err := s.jwtMaker.CreateToken(user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Delete жёстко удаляет текущего пользователя.
func (s *UserService) Delete(ctx context.Context, email string) error {
	user, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if _, err := s.users.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info("deleted user", slog.Int("id", user.ID))
	return nil
}

func (s *UserService) getByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Пользователь не найден")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
