// Package subscriptionsystem собирает приложение: хранилище, кеш,
// бизнес-логику и HTTP-сервер.
package subscriptionsystem

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-system/internal/cache"
	"github.com/magabrotheeeer/subscription-system/internal/config"
	"github.com/magabrotheeeer/subscription-system/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-system/internal/migrations"
	notificationservice "github.com/magabrotheeeer/subscription-system/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/subscription-system/internal/services/payment"
	paymentmethodservice "github.com/magabrotheeeer/subscription-system/internal/services/paymentmethod"
	subscriptionservice "github.com/magabrotheeeer/subscription-system/internal/services/subscription"
	userservice "github.com/magabrotheeeer/subscription-system/internal/services/user"
	"github.com/magabrotheeeer/subscription-system/internal/storage/repository"
)

// App связывает HTTP-сервер с его зависимостями и управляет их жизненным циклом.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует хранилище, прогоняет миграции, подключает кеш
// и собирает все сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.Postgres.ConnString())
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.New(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.Token.SecretKey, cfg.Token.TTL())

	userService := userservice.NewUserService(db, jwtMaker, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, db, db, cacheRedis, logger)
	paymentMethodService := paymentmethodservice.NewPaymentMethodService(db, db, logger)
	paymentService := paymentservice.NewPaymentService(db, db, db, db, logger)
	notificationService := notificationservice.NewNotificationService(db, db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		userService, subscriptionService, paymentMethodService, paymentService, notificationService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.cache.Close()
		a.db.DB.Close()
		return err
	}
}
