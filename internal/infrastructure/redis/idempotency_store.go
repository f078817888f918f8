package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/jhoicas/inventario-pos/internal/application/checkout"
)

var _ checkout.IdempotencyStore = (*IdempotencyStore)(nil)

const (
	// idem:checkout:{seller_id}:{key} -> "pending" | sale_id
	keyIdemCheckout = "idem:checkout:%s:%s"
	pendingValue    = "pending"

	// DefaultTTL vigencia de una clave de idempotencia.
	DefaultTTL = 24 * time.Hour
)

// releaseScript borra la clave solo si sigue pendiente (nunca borra una venta ya asociada).
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// IdempotencyStore implementa checkout.IdempotencyStore con SET NX + TTL.
type IdempotencyStore struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewIdempotencyStore construye el store. ttl <= 0 usa DefaultTTL.
func NewIdempotencyStore(rdb goredis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func idemKey(sellerID, key string) string {
	return fmt.Sprintf(keyIdemCheckout, sellerID, key)
}

// Reserve intenta reservar la clave. Si ya existe devuelve el sale_id asociado, o "" si sigue pendiente.
func (s *IdempotencyStore) Reserve(ctx context.Context, sellerID, key string) (string, bool, error) {
	k := idemKey(sellerID, key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.rdb.SetNX(ctx, k, pendingValue, s.ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return "", true, nil
		}
		val, err := s.rdb.Get(ctx, k).Result()
		if errors.Is(err, goredis.Nil) {
			continue // expiró entre SETNX y GET: reintentar
		}
		if err != nil {
			return "", false, fmt.Errorf("redis get: %w", err)
		}
		if val == pendingValue {
			return "", false, nil
		}
		return val, false, nil
	}
	return "", false, nil
}

// Complete asocia la clave a la venta confirmada, renovando el TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, sellerID, key, saleID string) error {
	if err := s.rdb.Set(ctx, idemKey(sellerID, key), saleID, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Release libera una clave pendiente para permitir reintentos.
func (s *IdempotencyStore) Release(ctx context.Context, sellerID, key string) error {
	if err := releaseScript.Run(ctx, s.rdb, []string{idemKey(sellerID, key)}, pendingValue).Err(); err != nil {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}
