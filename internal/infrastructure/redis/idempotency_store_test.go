package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idemredis "github.com/jhoicas/inventario-pos/internal/infrastructure/redis"
	"github.com/jhoicas/inventario-pos/pkg/config"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redis/...
func newStore(t *testing.T) *idemredis.IdempotencyStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	rdb, err := idemredis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return idemredis.NewIdempotencyStore(rdb, time.Minute)
}

func TestIdempotencyStore_CicloCompleto(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	key := uuid.NewString()

	_, reserved, err := s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	assert.True(t, reserved)

	saleID, reserved, err := s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Empty(t, saleID, "pendiente")

	require.NoError(t, s.Complete(ctx, "v1", key, "sale-1"))
	saleID, reserved, err = s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, "sale-1", saleID)

	// Release no borra una clave ya completada.
	require.NoError(t, s.Release(ctx, "v1", key))
	saleID, _, err = s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	assert.Equal(t, "sale-1", saleID)
}

func TestIdempotencyStore_ReleasePermiteReintento(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	key := uuid.NewString()

	_, reserved, err := s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, s.Release(ctx, "v1", key))

	_, reserved, err = s.Reserve(ctx, "v1", key)
	require.NoError(t, err)
	assert.True(t, reserved)
}
