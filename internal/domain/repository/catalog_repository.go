package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	SoftDeleteRepository[entity.Category]
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	SoftDeleteRepository[entity.Customer]
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	SoftDeleteRepository[entity.Supplier]
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	SoftDeleteRepository[entity.Product]
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}

// ProductUnitRepository define el puerto de persistencia para ProductUnit.
type ProductUnitRepository interface {
	SoftDeleteRepository[entity.ProductUnit]
	ListByProductID(ctx context.Context, productID string) ([]*entity.ProductUnit, error)
	GetByProductAndUnitName(ctx context.Context, productID, unitName string) (*entity.ProductUnit, error)
}

// ProductUnitPriceRepository define el puerto de persistencia para ProductUnitPrice.
type ProductUnitPriceRepository interface {
	SoftDeleteRepository[entity.ProductUnitPrice]
	ListByProductUnitID(ctx context.Context, productUnitID string) ([]*entity.ProductUnitPrice, error)
}
