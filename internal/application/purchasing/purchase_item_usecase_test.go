package purchasing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/testutil/memstore"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store    *memstore.Store
	uc       *purchasing.PurchaseItemUseCase
	purchase *entity.Purchase
	product  *entity.Product
	unit     *entity.ProductUnit
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	s := memstore.New()
	sup := s.SeedSupplier("Distribuidora")
	p := s.SeedProduct("SKU-1", "Agua 600ml")
	return &fixture{
		store:    s,
		purchase: s.SeedPurchase(sup.ID),
		product:  p,
		unit:     s.SeedUnit(p.ID, entity.UnitPCS),
		uc: purchasing.NewPurchaseItemUseCase(
			s.TxRunner(),
			inventory.NewLedger(strict, logger.Nop()),
			s.PurchaseItemRepo(),
			s.PurchaseRepo(),
			s.UnitRepo(),
			s.ProductRepo(),
			logger.Nop(),
		),
	}
}

func (f *fixture) create(t *testing.T, unitID, qty string) *dto.PurchaseItemResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreatePurchaseItemRequest{
		PurchaseID: f.purchase.ID, ProductUnitID: unitID,
		Quantity: dec(qty), Price: dec("1000"), Subtotal: dec("1000").Mul(dec(qty)),
	})
	require.NoError(t, err)
	return out
}

func TestPurchaseItem_CicloCompleto(t *testing.T) {
	f := newFixture(t, false)
	f.store.SeedStock(f.unit, "100")
	ctx := context.Background()

	item := f.create(t, f.unit.ID, "10")
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("110")))
	assert.Equal(t, "Agua 600ml", item.ProductName)
	assert.Equal(t, entity.UnitPCS, item.ProductUnitName)

	_, err := f.uc.Update(ctx, item.ID, dto.UpdatePurchaseItemRequest{Quantity: ptr(dec("15"))})
	require.NoError(t, err)
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("115")))

	require.NoError(t, f.uc.Delete(ctx, item.ID))
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("100")))

	_, err = f.uc.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseItem_CambioDeUnidadMueveStock(t *testing.T) {
	f := newFixture(t, false)
	u2 := f.store.SeedUnit(f.product.ID, entity.UnitBOX)
	f.store.SeedStock(f.unit, "40")
	f.store.SeedStock(u2, "20")
	item := f.create(t, f.unit.ID, "10") // U1 = 50

	out, err := f.uc.Update(context.Background(), item.ID, dto.UpdatePurchaseItemRequest{ProductUnitID: &u2.ID})

	require.NoError(t, err)
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("40")))
	assert.True(t, f.store.Quantity(u2.ID).Equal(dec("30")))
	assert.Equal(t, u2.ID, out.ProductUnitID)
	assert.Equal(t, entity.UnitBOX, out.ProductUnitName)
}

func TestPurchaseItem_CambioDeUnidadYCantidad(t *testing.T) {
	f := newFixture(t, false)
	u2 := f.store.SeedUnit(f.product.ID, entity.UnitDUS)
	f.store.SeedStock(f.unit, "0")
	f.store.SeedStock(u2, "0")
	item := f.create(t, f.unit.ID, "10")

	_, err := f.uc.Update(context.Background(), item.ID, dto.UpdatePurchaseItemRequest{
		ProductUnitID: &u2.ID, Quantity: ptr(dec("4")),
	})

	require.NoError(t, err)
	assert.True(t, f.store.Quantity(f.unit.ID).IsZero())
	assert.True(t, f.store.Quantity(u2.ID).Equal(dec("4")))
}

func TestPurchaseItem_ProductoSeDerivaDeLaUnidad(t *testing.T) {
	f := newFixture(t, false)
	other := f.store.SeedProduct("SKU-2", "Arroz")
	otherUnit := f.store.SeedUnit(other.ID, entity.UnitPACK)

	item := f.create(t, otherUnit.ID, "1")
	assert.Equal(t, other.ID, item.ProductID)

	out, err := f.uc.Update(context.Background(), item.ID, dto.UpdatePurchaseItemRequest{ProductUnitID: &f.unit.ID})
	require.NoError(t, err)
	assert.Equal(t, f.product.ID, out.ProductID)
}

func TestPurchaseItem_DeleteDejaStockNegativo(t *testing.T) {
	f := newFixture(t, false)
	f.store.SeedStock(f.unit, "0")
	item := f.create(t, f.unit.ID, "10")
	ctx := context.Background()

	// Salen 15 por ajuste manual: queda en -5 al borrar la línea.
	stocks := inventory.NewStockUseCase(f.store.TxRunner(), inventory.NewLedger(false, logger.Nop()),
		f.store.StockRepo(), f.store.UnitRepo(), logger.Nop())
	_, err := stocks.Adjust(ctx, dto.AdjustStockRequest{ProductUnitID: f.unit.ID, QuantityAdjustment: dec("-15")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = stocks.Adjust(ctx, dto.AdjustStockRequest{ProductUnitID: f.unit.ID, QuantityAdjustment: dec("-5")})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, item.ID))
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("-5")))

	// El ajuste manual no puede bajar más.
	_, err = stocks.Adjust(ctx, dto.AdjustStockRequest{ProductUnitID: f.unit.ID, QuantityAdjustment: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("-5")))
}

func TestPurchaseItem_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreatePurchaseItemRequest{
		PurchaseID: uuid.NewString(), ProductUnitID: f.unit.ID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	_, err = f.uc.Create(ctx, dto.CreatePurchaseItemRequest{
		PurchaseID: f.purchase.ID, ProductUnitID: uuid.NewString(), Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	_, err = f.uc.Update(ctx, uuid.NewString(), dto.UpdatePurchaseItemRequest{Quantity: ptr(dec("1"))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.uc.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
}

func TestPurchaseItem_ValidaMontos(t *testing.T) {
	f := newFixture(t, false)
	cases := []dto.CreatePurchaseItemRequest{
		{PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("0")},
		{PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("1"), Price: dec("-1")},
		{PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("1.005")},
	}
	for _, in := range cases {
		_, err := f.uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestPurchaseItem_SinFilaDeStock(t *testing.T) {
	t.Run("tolerante", func(t *testing.T) {
		f := newFixture(t, false)
		item := f.create(t, f.unit.ID, "3")
		assert.NotEmpty(t, item.ID)
	})
	t.Run("estricto revierte la línea", func(t *testing.T) {
		f := newFixture(t, true)
		_, err := f.uc.Create(context.Background(), dto.CreatePurchaseItemRequest{
			PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("3"),
		})
		assert.ErrorIs(t, err, domain.ErrStockNotTracked)
		n, _ := f.store.PurchaseItemRepo().CountByPurchaseID(context.Background(), f.purchase.ID)
		assert.Zero(t, n)
	})
}

func TestPurchaseItem_Atomicidad(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		f := newFixture(t, false)
		f.store.SeedStock(f.unit, "100")
		f.store.FailStockUpdate(f.unit.ID, memstore.ErrInjected)

		_, err := f.uc.Create(ctx, dto.CreatePurchaseItemRequest{
			PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("10"),
		})

		assert.ErrorIs(t, err, memstore.ErrInjected)
		n, _ := f.store.PurchaseItemRepo().CountByPurchaseID(ctx, f.purchase.ID)
		assert.Zero(t, n)
		assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("100")))
	})

	t.Run("update", func(t *testing.T) {
		f := newFixture(t, false)
		u2 := f.store.SeedUnit(f.product.ID, entity.UnitBOX)
		f.store.SeedStock(f.unit, "100")
		f.store.SeedStock(u2, "20")
		item := f.create(t, f.unit.ID, "10")
		// Falla el ajuste de U2; el de U1 puede haberse aplicado antes y debe revertirse.
		f.store.FailStockUpdate(u2.ID, memstore.ErrInjected)

		_, err := f.uc.Update(ctx, item.ID, dto.UpdatePurchaseItemRequest{ProductUnitID: &u2.ID, Quantity: ptr(dec("7"))})

		assert.ErrorIs(t, err, memstore.ErrInjected)
		got, err := f.uc.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, f.unit.ID, got.ProductUnitID)
		assert.True(t, got.Quantity.Equal(dec("10")))
		assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("110")))
		assert.True(t, f.store.Quantity(u2.ID).Equal(dec("20")))
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t, false)
		f.store.SeedStock(f.unit, "100")
		item := f.create(t, f.unit.ID, "10")
		f.store.FailStockUpdate(f.unit.ID, memstore.ErrInjected)

		err := f.uc.Delete(ctx, item.ID)

		assert.ErrorIs(t, err, memstore.ErrInjected)
		_, err = f.uc.GetByID(ctx, item.ID)
		assert.NoError(t, err)
		assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("110")))
	})
}

// Conservación: el stock final es Q0 más la suma de las cantidades vivas.
func TestPurchaseItem_ConservacionConcurrente(t *testing.T) {
	f := newFixture(t, false)
	f.store.SeedStock(f.unit, "10")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := f.uc.Create(ctx, dto.CreatePurchaseItemRequest{
				PurchaseID: f.purchase.ID, ProductUnitID: f.unit.ID, Quantity: dec("1.25"),
			})
			if !assert.NoError(t, err) {
				return
			}
			if i%2 == 0 {
				assert.NoError(t, f.uc.Delete(ctx, out.ID))
			}
		}(i)
	}
	wg.Wait()

	assert.True(t, f.store.Quantity(f.unit.ID).Equal(dec("22.5")), "got %s", f.store.Quantity(f.unit.ID))
}

func TestPurchaseItem_ListadosPorCompra(t *testing.T) {
	f := newFixture(t, false)
	f.create(t, f.unit.ID, "1")
	f.create(t, f.unit.ID, "2")
	ctx := context.Background()

	all, err := f.uc.ListByPurchase(ctx, f.purchase.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Quantity.Equal(dec("1")))

	page, err := f.uc.List(ctx, f.purchase.ID, dto.PageQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Meta.TotalPages)

	_, err = f.uc.ListByPurchase(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
