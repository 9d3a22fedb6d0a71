package cache

import (
	"context"
	"time"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/notifications"
)

var _ notifications.NameCache = (*NoopNameCache)(nil)

// NoopNameCache caché nulo: se usa cuando REDIS_ADDR no está configurado.
// Cada lectura es un miss, así que los nombres se resuelven siempre en BD.
type NoopNameCache struct{}

// NewNoopNameCache construye el caché nulo.
func NewNoopNameCache() *NoopNameCache { return &NoopNameCache{} }

func (NoopNameCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (NoopNameCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
