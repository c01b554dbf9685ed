package repository

import "context"

// SoftDeleteRepository puerto genérico para entidades con borrado lógico (is_deleted).
// GetByID devuelve nil, nil si no existe o está eliminada. Update y SoftDelete devuelven
// domain.ErrNotFound si no afectaron ninguna fila viva.
type SoftDeleteRepository[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, e *T) error
	List(ctx context.Context, limit, offset int) ([]*T, int, error)
	SoftDelete(ctx context.Context, id string) error
}
