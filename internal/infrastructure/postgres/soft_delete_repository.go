package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
)

// softDeleteTable describe una tabla con columna is_deleted. columns[0] debe ser "id";
// values devuelve los valores en el mismo orden que columns. created_at no se actualiza.
type softDeleteTable[T any] struct {
	name    string
	columns []string
	scan    func(row pgx.Row) (*T, error)
	values  func(e *T) []any
}

// SoftDeleteRepo CRUD genérico con borrado lógico (usable con pool o tx).
type SoftDeleteRepo[T any] struct {
	q Querier
	t softDeleteTable[T]
}

func newSoftDeleteRepo[T any](q Querier, t softDeleteTable[T]) *SoftDeleteRepo[T] {
	return &SoftDeleteRepo[T]{q: q, t: t}
}

func (r *SoftDeleteRepo[T]) selectList() string {
	return strings.Join(r.t.columns, ", ")
}

// Create inserta la entidad.
func (r *SoftDeleteRepo[T]) Create(ctx context.Context, e *T) error {
	placeholders := make([]string, len(r.t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.t.name, r.selectList(), strings.Join(placeholders, ", "))
	if _, err := r.q.Exec(ctx, query, r.t.values(e)...); err != nil {
		return mapWriteError("insert "+r.t.name, err)
	}
	return nil
}

// GetByID obtiene una fila viva por ID; nil, nil si no existe o está eliminada.
func (r *SoftDeleteRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, "id = $1", id)
}

// Update reescribe todas las columnas salvo id y created_at.
func (r *SoftDeleteRepo[T]) Update(ctx context.Context, e *T) error {
	vals := r.t.values(e)
	args := []any{vals[0]}
	sets := make([]string, 0, len(r.t.columns))
	for i, col := range r.t.columns[1:] {
		if col == "created_at" {
			continue
		}
		args = append(args, vals[i+1])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 AND is_deleted = false`,
		r.t.name, strings.Join(sets, ", "))
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("update "+r.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista filas vivas, más recientes primero, con el total para paginar.
func (r *SoftDeleteRepo[T]) List(ctx context.Context, limit, offset int) ([]*T, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE is_deleted = false`, r.t.name)
	if err := r.q.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.t.name, err)
	}
	list, err := r.findMany(ctx, "true ORDER BY created_at DESC, id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SoftDelete marca la fila como eliminada.
func (r *SoftDeleteRepo[T]) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET is_deleted = true, updated_at = now() WHERE id = $1 AND is_deleted = false`, r.t.name)
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", r.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// findOne busca una fila viva que cumpla where.
func (r *SoftDeleteRepo[T]) findOne(ctx context.Context, where string, args ...any) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_deleted = false AND %s`, r.selectList(), r.t.name, where)
	e, err := r.t.scan(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.t.name, err)
	}
	return e, nil
}

// findMany lista filas vivas que cumplan where (puede incluir ORDER BY / LIMIT).
func (r *SoftDeleteRepo[T]) findMany(ctx context.Context, where string, args ...any) ([]*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_deleted = false AND %s`, r.selectList(), r.t.name, where)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.name, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		e, err := r.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
