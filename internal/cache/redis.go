// Package cache реализует кеш подписок поверх redis.
//
// Кеш необязателен для корректности: промах означает поход в базу,
// а ошибки записи и инвалидации вызывающая сторона только логирует.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/subscription-system/internal/config"
)

// Cache инкапсулирует клиент redis.
type Cache struct {
	client *redis.Client
}

// New подключается к redis по настройкам cfg и проверяет соединение.
func New(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: ping %s: %w", op, cfg.Addr, err)
	}
	return &Cache{client: client}, nil
}

// Get читает значение по ключу в result. Возвращает false при промахе.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"

	raw, err := c.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: decode %q: %w", op, key, err)
	}
	return true, nil
}

// Set сохраняет значение с временем жизни expiration.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	const op = "cache.Set"

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode %q: %w", op, key, err)
	}
	if err := c.client.Set(context.Background(), key, raw, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет значение по ключу. Отсутствующий ключ не ошибка.
func (c *Cache) Invalidate(key string) error {
	const op = "cache.Invalidate"

	if err := c.client.Del(context.Background(), key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с redis.
func (c *Cache) Close() error {
	return c.client.Close()
}
