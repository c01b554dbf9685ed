//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/inventario-pos-api/internal/application/ports"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisCache(rdb, "pos-test:")
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "catalog:product:1")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "catalog:product:1", []byte(`{"id":"1"}`), time.Minute))
	got, err := c.Get(ctx, "catalog:product:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	require.NoError(t, c.Delete(ctx, "catalog:product:1", "no-existe"))
	_, err = c.Get(ctx, "catalog:product:1")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
	assert.NoError(t, c.Ping(ctx))
}

func TestRedisCache_Expira(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := c.Get(ctx, "k")
		return err == ports.ErrCacheMiss
	}, 3*time.Second, 50*time.Millisecond)
}

func TestNewRedisClient_URLInvalida(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "://nada")
	assert.Error(t, err)
}
