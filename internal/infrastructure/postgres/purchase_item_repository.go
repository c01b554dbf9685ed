package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

var _ repository.PurchaseItemRepository = (*PurchaseItemRepo)(nil)

// Las lecturas traen el nombre del producto y de la unidad.
const purchaseItemSelect = `
	SELECT pi.id, pi.purchase_id, pi.product_id, pi.product_unit_id, pi.quantity, pi.price, pi.subtotal,
	       pi.created_at, pi.updated_at, p.name, pu.unit_name
	FROM purchase_items pi
	JOIN products p ON p.id = pi.product_id
	JOIN product_units pu ON pu.id = pi.product_unit_id`

// PurchaseItemRepo líneas de compra sobre PostgreSQL (usable con pool o tx).
type PurchaseItemRepo struct {
	q Querier
}

// NewPurchaseItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseItemRepository(q Querier) *PurchaseItemRepo {
	return &PurchaseItemRepo{q: q}
}

func scanPurchaseItem(row pgx.Row) (*entity.PurchaseItem, error) {
	var i entity.PurchaseItem
	err := row.Scan(&i.ID, &i.PurchaseID, &i.ProductID, &i.ProductUnitID, &i.Quantity, &i.Price, &i.Subtotal,
		&i.CreatedAt, &i.UpdatedAt, &i.ProductName, &i.UnitName)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste una línea.
func (r *PurchaseItemRepo) Create(ctx context.Context, i *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, product_unit_id, quantity, price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.PurchaseID, i.ProductID, i.ProductUnitID, i.Quantity, i.Price, i.Subtotal, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert purchase item", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *PurchaseItemRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseItem, error) {
	return r.getOne(ctx, purchaseItemSelect+` WHERE pi.id = $1`, id)
}

// GetByIDForUpdate obtiene la línea y bloquea solo su fila (FOR UPDATE OF pi).
func (r *PurchaseItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseItem, error) {
	return r.getOne(ctx, purchaseItemSelect+` WHERE pi.id = $1 FOR UPDATE OF pi`, id)
}

func (r *PurchaseItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PurchaseItem, error) {
	i, err := scanPurchaseItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase item: %w", err)
	}
	return i, nil
}

// Update reescribe la línea.
func (r *PurchaseItemRepo) Update(ctx context.Context, i *entity.PurchaseItem) error {
	query := `
		UPDATE purchase_items
		SET purchase_id = $2, product_id = $3, product_unit_id = $4, quantity = $5, price = $6, subtotal = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.PurchaseID, i.ProductID, i.ProductUnitID, i.Quantity, i.Price, i.Subtotal, i.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update purchase item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la línea.
func (r *PurchaseItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista líneas paginadas; purchaseID vacío = todas.
func (r *PurchaseItemRepo) List(ctx context.Context, purchaseID string, limit, offset int) ([]*entity.PurchaseItem, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM purchase_items WHERE ($1 = '' OR purchase_id::text = $1)`
	if err := r.q.QueryRow(ctx, countQuery, purchaseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase items: %w", err)
	}
	list, err := r.many(ctx, purchaseItemSelect+`
		WHERE ($1 = '' OR pi.purchase_id::text = $1)
		ORDER BY pi.created_at DESC, pi.id LIMIT $2 OFFSET $3`, purchaseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByPurchaseID lista todas las líneas de una compra en orden de alta.
func (r *PurchaseItemRepo) ListByPurchaseID(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	return r.many(ctx, purchaseItemSelect+` WHERE pi.purchase_id = $1 ORDER BY pi.created_at, pi.id`, purchaseID)
}

// CountByPurchaseID cuenta las líneas de una compra.
func (r *PurchaseItemRepo) CountByPurchaseID(ctx context.Context, purchaseID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchase_items WHERE purchase_id = $1`, purchaseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count purchase items: %w", err)
	}
	return n, nil
}

func (r *PurchaseItemRepo) many(ctx context.Context, query string, args ...any) ([]*entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		i, err := scanPurchaseItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}
