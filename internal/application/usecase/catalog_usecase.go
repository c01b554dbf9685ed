package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/ports"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// CatalogHooks comportamiento específico de cada entidad del catálogo.
//   - Build: valida la entrada de alta y construye la entidad (ID y timestamps incluidos).
//   - Apply: aplica una actualización parcial sobre la entidad cargada.
//   - Response: mapea la entidad al DTO de salida.
type CatalogHooks[E, C, U, R any] struct {
	Kind     string
	Build    func(ctx context.Context, in C) (*E, error)
	Apply    func(ctx context.Context, e *E, in U) error
	Response func(e *E) R
}

// CatalogDeps dependencias compartidas por todos los catálogos.
type CatalogDeps struct {
	Cache ports.Cache
	TTL   time.Duration
	Log   *logger.Logger
}

// CatalogUseCase CRUD genérico con borrado lógico (categorías, clientes, proveedores, productos).
// GetByID se sirve desde caché cuando está disponible; Update y Delete la invalidan.
type CatalogUseCase[E, C, U, R any] struct {
	repo  repository.SoftDeleteRepository[E]
	hooks CatalogHooks[E, C, U, R]
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCatalogUseCase construye el caso de uso genérico.
func NewCatalogUseCase[E, C, U, R any](
	repo repository.SoftDeleteRepository[E],
	hooks CatalogHooks[E, C, U, R],
	deps CatalogDeps,
) *CatalogUseCase[E, C, U, R] {
	cache := deps.Cache
	if cache == nil {
		cache = ports.NopCache{}
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase[E, C, U, R]{
		repo:  repo,
		hooks: hooks,
		cache: cache,
		ttl:   deps.TTL,
		log:   log.Component("catalog-" + hooks.Kind),
	}
}

// Create valida y persiste una nueva entidad.
func (uc *CatalogUseCase[E, C, U, R]) Create(ctx context.Context, in C) (*R, error) {
	e, err := uc.hooks.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := uc.hooks.Response(e)
	return &out, nil
}

// GetByID obtiene una entidad viva; eliminada o inexistente devuelve domain.ErrNotFound.
func (uc *CatalogUseCase[E, C, U, R]) GetByID(ctx context.Context, id string) (*R, error) {
	key := uc.cacheKey(id)
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		var out R
		if err := json.Unmarshal(raw, &out); err == nil {
			return &out, nil
		}
		uc.log.Warn().Str("key", key).Msg("entrada de caché corrupta, se ignora")
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
	}

	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	out := uc.hooks.Response(e)
	if raw, err := json.Marshal(out); err == nil {
		if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return &out, nil
}

// List lista entidades vivas paginadas.
func (uc *CatalogUseCase[E, C, U, R]) List(ctx context.Context, q dto.PageQuery) (*dto.Page[R], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]R, 0, len(list))
	for _, e := range list {
		items = append(items, uc.hooks.Response(e))
	}
	return &dto.Page[R]{Items: items, Meta: dto.NewPageMeta(q, total)}, nil
}

// Update aplica una actualización parcial.
func (uc *CatalogUseCase[E, C, U, R]) Update(ctx context.Context, id string, in U) (*R, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.hooks.Apply(ctx, e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	out := uc.hooks.Response(e)
	return &out, nil
}

// Delete marca la entidad como eliminada.
func (uc *CatalogUseCase[E, C, U, R]) Delete(ctx context.Context, id string) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *CatalogUseCase[E, C, U, R]) cacheKey(id string) string {
	return "catalog:" + uc.hooks.Kind + ":" + id
}

func (uc *CatalogUseCase[E, C, U, R]) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Delete(ctx, uc.cacheKey(id)); err != nil {
		uc.log.Warn().Err(err).Str("id", id).Msg("invalidación de caché fallida")
	}
}
