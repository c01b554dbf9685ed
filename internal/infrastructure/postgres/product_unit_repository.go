package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

var (
	_ repository.ProductUnitRepository      = (*ProductUnitRepo)(nil)
	_ repository.ProductUnitPriceRepository = (*ProductUnitPriceRepo)(nil)
)

// ProductUnitRepo unidades de producto sobre PostgreSQL.
type ProductUnitRepo struct {
	*SoftDeleteRepo[entity.ProductUnit]
}

// NewProductUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductUnitRepository(q Querier) *ProductUnitRepo {
	return &ProductUnitRepo{newSoftDeleteRepo(q, softDeleteTable[entity.ProductUnit]{
		name: "product_units",
		columns: []string{
			"id", "product_id", "unit_name", "barcode", "conversion_to_base", "is_base_unit",
			"created_at", "updated_at",
		},
		scan: func(row pgx.Row) (*entity.ProductUnit, error) {
			var u entity.ProductUnit
			if err := row.Scan(&u.ID, &u.ProductID, &u.UnitName, &u.Barcode, &u.ConversionToBase,
				&u.IsBaseUnit, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return nil, err
			}
			return &u, nil
		},
		values: func(u *entity.ProductUnit) []any {
			return []any{u.ID, u.ProductID, u.UnitName, u.Barcode, u.ConversionToBase, u.IsBaseUnit,
				u.CreatedAt, u.UpdatedAt}
		},
	})}
}

// ListByProductID lista las unidades vivas del producto, la unidad base primero.
func (r *ProductUnitRepo) ListByProductID(ctx context.Context, productID string) ([]*entity.ProductUnit, error) {
	return r.findMany(ctx, "product_id = $1 ORDER BY is_base_unit DESC, unit_name", productID)
}

// GetByProductAndUnitName busca una unidad viva del producto por nombre.
func (r *ProductUnitRepo) GetByProductAndUnitName(ctx context.Context, productID, unitName string) (*entity.ProductUnit, error) {
	return r.findOne(ctx, "product_id = $1 AND unit_name = $2", productID, unitName)
}

// ProductUnitPriceRepo precios por unidad sobre PostgreSQL.
type ProductUnitPriceRepo struct {
	*SoftDeleteRepo[entity.ProductUnitPrice]
}

// NewProductUnitPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductUnitPriceRepository(q Querier) *ProductUnitPriceRepo {
	return &ProductUnitPriceRepo{newSoftDeleteRepo(q, softDeleteTable[entity.ProductUnitPrice]{
		name: "product_unit_prices",
		columns: []string{
			"id", "product_unit_id", "price_type", "price", "minimum_qty", "start_date", "end_date",
			"created_at", "updated_at",
		},
		scan: func(row pgx.Row) (*entity.ProductUnitPrice, error) {
			var p entity.ProductUnitPrice
			if err := row.Scan(&p.ID, &p.ProductUnitID, &p.PriceType, &p.Price, &p.MinimumQty,
				&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			return &p, nil
		},
		values: func(p *entity.ProductUnitPrice) []any {
			return []any{p.ID, p.ProductUnitID, p.PriceType, p.Price, p.MinimumQty, p.StartDate, p.EndDate,
				p.CreatedAt, p.UpdatedAt}
		},
	})}
}

// ListByProductUnitID lista los precios vivos de la unidad ordenados por tipo y cantidad mínima.
func (r *ProductUnitPriceRepo) ListByProductUnitID(ctx context.Context, productUnitID string) ([]*entity.ProductUnitPrice, error) {
	return r.findMany(ctx, "product_unit_id = $1 ORDER BY price_type, minimum_qty", productUnitID)
}
