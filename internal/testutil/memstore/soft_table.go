package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
)

// softTable tabla genérica con borrado lógico. Guarda copias: los llamadores nunca
// comparten punteros con el almacén.
type softTable[T any] struct {
	s       *Store
	rows    map[string]*row[T]
	id      func(*T) *string
	deleted func(*T) *bool
}

func newSoftTable[T any](s *Store, id func(*T) *string, deleted func(*T) *bool) *softTable[T] {
	return &softTable[T]{s: s, rows: map[string]*row[T]{}, id: id, deleted: deleted}
}

func (t *softTable[T]) Create(_ context.Context, e *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	id := *t.id(e)
	if _, ok := t.rows[id]; ok {
		return domain.ErrDuplicate
	}
	t.rows[id] = &row[T]{seq: t.s.next(), v: *e}
	return nil
}

func (t *softTable[T]) GetByID(_ context.Context, id string) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := t.rows[id]
	if !ok || *t.deleted(&r.v) {
		return nil, nil
	}
	c := r.v
	return &c, nil
}

func (t *softTable[T]) Update(_ context.Context, e *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := t.rows[*t.id(e)]
	if !ok || *t.deleted(&r.v) {
		return domain.ErrNotFound
	}
	r.v = *e
	return nil
}

func (t *softTable[T]) List(_ context.Context, limit, offset int) ([]*T, int, error) {
	all := t.Filter(func(*T) bool { return true })
	return page(all, limit, offset), len(all), nil
}

func (t *softTable[T]) SoftDelete(_ context.Context, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := t.rows[id]
	if !ok || *t.deleted(&r.v) {
		return domain.ErrNotFound
	}
	*t.deleted(&r.v) = true
	return nil
}

// Filter devuelve copias de las filas vivas que cumplen keep, más recientes primero.
func (t *softTable[T]) Filter(keep func(*T) bool) []*T {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if !*t.deleted(&r.v) && keep(&r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*T, len(rows))
	for i, r := range rows {
		c := r.v
		out[i] = &c
	}
	return out
}
