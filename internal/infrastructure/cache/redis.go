package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/notifications"
	"github.com/CardonaSantos/pos-ventas-api/pkg/config"
)

var _ notifications.NameCache = (*RedisNameCache)(nil)

// RedisNameCache caché de nombres de catálogo respaldado en Redis.
// Llaves con prefijo fijo para convivir con otros usos de la instancia.
type RedisNameCache struct {
	client *redis.Client
}

const keyPrefix = "pos:names:"

// NewRedisNameCache conecta el cliente y verifica la instancia con un ping.
func NewRedisNameCache(ctx context.Context, cfg config.RedisConfig) (*RedisNameCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisNameCache{client: client}, nil
}

// Get devuelve el valor cacheado; un miss no es error.
func (c *RedisNameCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set guarda el valor con expiración.
func (c *RedisNameCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (c *RedisNameCache) Close() error {
	return c.client.Close()
}
