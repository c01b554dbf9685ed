package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// Helpers de siembra para tests. Entran por los repositorios y entran en pánico si fallan.

func (s *Store) SeedSupplier(name string) *entity.Supplier {
	now := time.Now()
	sup := &entity.Supplier{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	must(s.Suppliers.Create(context.Background(), sup))
	return sup
}

func (s *Store) SeedCategory(name string) *entity.Category {
	now := time.Now()
	c := &entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	must(s.Categories.Create(context.Background(), c))
	return c
}

func (s *Store) SeedProduct(sku, name string) *entity.Product {
	now := time.Now()
	p := &entity.Product{ID: uuid.NewString(), SKU: sku, Name: name, CreatedAt: now, UpdatedAt: now}
	must(s.ProductRepo().Create(context.Background(), p))
	return p
}

func (s *Store) SeedUnit(productID, unitName string) *entity.ProductUnit {
	now := time.Now()
	u := &entity.ProductUnit{
		ID: uuid.NewString(), ProductID: productID, UnitName: unitName,
		ConversionToBase: decimal.NewFromInt(1), IsBaseUnit: unitName == entity.UnitPCS,
		CreatedAt: now, UpdatedAt: now,
	}
	must(s.Units.Create(context.Background(), u))
	return u
}

// SeedStock crea la fila de stock de la unidad con la cantidad dada.
func (s *Store) SeedStock(unit *entity.ProductUnit, qty string) *entity.Stock {
	now := time.Now()
	st := &entity.Stock{
		ID: uuid.NewString(), ProductID: unit.ProductID, ProductUnitID: unit.ID,
		Quantity: decimal.RequireFromString(qty), MinimumStock: decimal.Zero,
		CreatedAt: now, UpdatedAt: now,
	}
	must(s.StockRepo().Create(context.Background(), st))
	return st
}

func (s *Store) SeedPurchase(supplierID string) *entity.Purchase {
	now := time.Now()
	p := &entity.Purchase{ID: uuid.NewString(), SupplierID: supplierID, CreatedAt: now, UpdatedAt: now}
	must(s.PurchaseRepo().Create(context.Background(), p))
	return p
}

// Quantity devuelve la cantidad actual de la unidad; decimal.Zero si no tiene fila.
func (s *Store) Quantity(productUnitID string) decimal.Decimal {
	st, _ := s.StockRepo().GetByProductUnitID(context.Background(), productUnitID)
	if st == nil {
		return decimal.Zero
	}
	return st.Quantity
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
