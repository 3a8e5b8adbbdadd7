package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain"
)

const keyPrefix = "insights:"

var _ ports.AlertDeduper = (*AlertDeduper)(nil)

// AlertDeduper claves de alerta compartidas entre réplicas del correlador.
// Acquire usa SETNX con TTL: la clave caduca sola si nadie la libera.
type AlertDeduper struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewAlertDeduper construye el deduper. ttl <= 0 deja las claves sin expiración.
func NewAlertDeduper(client goredis.Cmdable, ttl time.Duration) *AlertDeduper {
	return &AlertDeduper{client: client, ttl: ttl}
}

func (d *AlertDeduper) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, domain.NewTransportError("redis_setnx", err)
	}
	return ok, nil
}

func (d *AlertDeduper) Release(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := d.client.Del(ctx, full...).Err(); err != nil {
		return domain.NewTransportError("redis_del", err)
	}
	return nil
}
