// Package cache реализует кеш соответствия короткий код -> оригинальный URL поверх Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tinyurl:code:"

// RedisCache кеш редиректов. Записи только добавляются и удаляются,
// оригинальный URL ссылки не меняется.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение.
//
// Параметры:
//   - ctx: контекст выполнения
//   - addr: адрес Redis в формате host:port
//   - ttl: время жизни записи, 0 - без ограничения
//
// Возвращает:
//   - *RedisCache: готовый кеш
//   - error: ошибка подключения
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, code string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", code, err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, code, originalURL string) error {
	if err := c.client.Set(ctx, keyPrefix+code, originalURL, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", code, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, keyPrefix+code).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", code, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close() //nolint:wrapcheck
}
