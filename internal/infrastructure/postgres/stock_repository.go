package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, product_id, product_unit_id, quantity, minimum_stock, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductUnitID, &s.Quantity, &s.MinimumStock, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la fila de stock; una segunda fila para la misma unidad devuelve domain.ErrDuplicate.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.ProductUnitID, s.Quantity, s.MinimumStock, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert stock", err)
	}
	return nil
}

// GetByProductUnitID obtiene el stock de una unidad sin bloquear.
func (r *StockRepo) GetByProductUnitID(ctx context.Context, productUnitID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE product_unit_id = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, productUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetByProductUnitIDForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetByProductUnitIDForUpdate(ctx context.Context, productUnitID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE product_unit_id = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, productUnitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// UpdateQuantity escribe la nueva cantidad.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE stocks SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el stock por fecha de alta.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.Stock, int, error) {
	return r.list(ctx, "true", limit, offset)
}

// ListBelowMinimum lista las filas con cantidad en o por debajo del mínimo.
func (r *StockRepo) ListBelowMinimum(ctx context.Context, limit, offset int) ([]*entity.Stock, int, error) {
	return r.list(ctx, "quantity <= minimum_stock", limit, offset)
}

func (r *StockRepo) list(ctx context.Context, where string, limit, offset int) ([]*entity.Stock, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stocks WHERE `+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stocks: %w", err)
	}
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE ` + where + `
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}
