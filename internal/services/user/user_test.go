package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-system/internal/lib/password"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (int, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func newTestUserService(repo *MockUserRepository) *UserService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewUserService(repo, jwt.NewMaker("test-secret", time.Hour), logger)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("успешная регистрация", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "new@example.com").
			Return(nil, fmt.Errorf("get user: %w", sql.ErrNoRows))
		repo.On("CreateUser", mock.Anything, "new@example.com", mock.AnythingOfType("string")).
			Return(1, nil)

		svc := newTestUserService(repo)
		user, token, err := svc.Register(ctx, "new@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "new@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
	})

	t.Run("пользователь уже существует", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "taken@example.com").
			Return(&models.User{ID: 1, Email: "taken@example.com"}, nil)

		svc := newTestUserService(repo)
		_, _, err := svc.Register(ctx, "taken@example.com", "password123")

		require.Error(t, err)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
		assert.Equal(t, "Пользователь уже существует", err.Error())
		repo.AssertNotCalled(t, "CreateUser")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := password.GetHash("correct-password")
	require.NoError(t, err)

	t.Run("успешный вход", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{ID: 1, Email: "user@example.com", PasswordHash: hash, IsActive: true}, nil)

		svc := newTestUserService(repo)
		token, err := svc.Login(ctx, "user@example.com", "correct-password")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, fmt.Errorf("get user: %w", sql.ErrNoRows))

		svc := newTestUserService(repo)
		_, err := svc.Login(ctx, "ghost@example.com", "whatever")

		require.Error(t, err)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("неверный пароль", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{ID: 1, Email: "user@example.com", PasswordHash: hash, IsActive: true}, nil)

		svc := newTestUserService(repo)
		_, err := svc.Login(ctx, "user@example.com", "wrong-password")

		require.Error(t, err)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
		assert.Equal(t, "Неверный пароль", err.Error())
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	hash, err := password.GetHash("old-password")
	require.NoError(t, err)

	t.Run("смена почты перевыпускает токен", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "old@example.com").
			Return(&models.User{ID: 1, Email: "old@example.com", PasswordHash: hash, IsActive: true}, nil)
		repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "new@example.com"
		})).Return(1, nil)

		svc := newTestUserService(repo)
		newEmail := "new@example.com"
		user, token, err := svc.Update(ctx, "old@example.com", models.UserUpdate{Email: &newEmail})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)

		claims, err := svc.jwtMaker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", claims.Mail)
		repo.AssertExpectations(t)
	})

	t.Run("смена пароля меняет хэш", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{ID: 1, Email: "user@example.com", PasswordHash: hash, IsActive: true}, nil)
		repo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.PasswordHash != hash && password.CompareHash(u.PasswordHash, "new-password") == nil
		})).Return(1, nil)

		svc := newTestUserService(repo)
		newPassword := "new-password"
		_, _, err := svc.Update(ctx, "user@example.com", models.UserUpdate{Password: &newPassword})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное удаление", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "user@example.com").
			Return(&models.User{ID: 7, Email: "user@example.com", IsActive: true}, nil)
		repo.On("DeleteUser", mock.Anything, 7).Return(1, nil)

		svc := newTestUserService(repo)
		require.NoError(t, svc.Delete(ctx, "user@example.com"))
		repo.AssertExpectations(t)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, fmt.Errorf("get user: %w", sql.ErrNoRows))

		svc := newTestUserService(repo)
		err := svc.Delete(ctx, "ghost@example.com")
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
