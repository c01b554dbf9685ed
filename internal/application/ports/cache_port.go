package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss la clave no está en caché.
var ErrCacheMiss = errors.New("cache miss")

// Cache puerto de salida para la caché de lectura del catálogo.
// Cualquier adaptador (Redis, memoria, no-op) debe implementarlo; un fallo de caché nunca
// debe impedir servir la petición desde la base de datos.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NopCache implementación vacía: toda lectura es un miss.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, ...string) error { return nil }
