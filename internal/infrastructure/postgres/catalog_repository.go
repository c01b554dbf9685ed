package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	*SoftDeleteRepo[entity.Category]
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{newSoftDeleteRepo(q, softDeleteTable[entity.Category]{
		name:    "categories",
		columns: []string{"id", "name", "description", "created_at", "updated_at"},
		scan: func(row pgx.Row) (*entity.Category, error) {
			var c entity.Category
			if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			return &c, nil
		},
		values: func(c *entity.Category) []any {
			return []any{c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt}
		},
	})}
}

// CustomerRepo clientes sobre PostgreSQL.
type CustomerRepo struct {
	*SoftDeleteRepo[entity.Customer]
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{newSoftDeleteRepo(q, softDeleteTable[entity.Customer]{
		name:    "customers",
		columns: partyColumns,
		scan: func(row pgx.Row) (*entity.Customer, error) {
			var c entity.Customer
			if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			return &c, nil
		},
		values: func(c *entity.Customer) []any {
			return []any{c.ID, c.Name, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt}
		},
	})}
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	*SoftDeleteRepo[entity.Supplier]
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{newSoftDeleteRepo(q, softDeleteTable[entity.Supplier]{
		name:    "suppliers",
		columns: partyColumns,
		scan: func(row pgx.Row) (*entity.Supplier, error) {
			var s entity.Supplier
			if err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return nil, err
			}
			return &s, nil
		},
		values: func(s *entity.Supplier) []any {
			return []any{s.ID, s.Name, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt}
		},
	})}
}

var partyColumns = []string{"id", "name", "phone", "address", "created_at", "updated_at"}

// ProductRepo productos sobre PostgreSQL.
type ProductRepo struct {
	*SoftDeleteRepo[entity.Product]
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{newSoftDeleteRepo(q, softDeleteTable[entity.Product]{
		name:    "products",
		columns: []string{"id", "sku", "name", "category_id", "brand", "created_at", "updated_at"},
		scan: func(row pgx.Row) (*entity.Product, error) {
			var p entity.Product
			if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.CategoryID, &p.Brand, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			return &p, nil
		},
		values: func(p *entity.Product) []any {
			return []any{p.ID, p.SKU, p.Name, p.CategoryID, p.Brand, p.CreatedAt, p.UpdatedAt}
		},
	})}
}

// GetBySKU obtiene un producto vivo por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, "sku = $1", sku)
}
