package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/testutil/memstore"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedUnit(t *testing.T, s *memstore.Store) *entity.ProductUnit {
	t.Helper()
	p := s.SeedProduct("SKU-"+t.Name(), "Producto")
	return s.SeedUnit(p.ID, entity.UnitPCS)
}

func runAdjust(t *testing.T, s *memstore.Store, l *inventory.Ledger, manual bool, unitID, delta string) (*inventory.AdjustResult, error) {
	t.Helper()
	var res *inventory.AdjustResult
	err := s.TxRunner().Run(context.Background(), func(repos inventory.TxRepositories) error {
		d := invdomain.StockDelta{ProductUnitID: unitID, Delta: dec(delta)}
		var err error
		if manual {
			res, err = l.AdjustManual(context.Background(), repos.Stocks, d)
		} else {
			res, err = l.AdjustForPurchase(context.Background(), repos.Stocks, d)
		}
		return err
	})
	return res, err
}

func TestLedger_AdjustForPurchase_SumaYDevuelvePrevio(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)
	s.SeedStock(u, "10")
	l := inventory.NewLedger(false, logger.Nop())

	res, err := runAdjust(t, s, l, false, u.ID, "2.5")

	require.NoError(t, err)
	assert.True(t, res.Tracked)
	assert.True(t, res.Previous.Equal(dec("10")))
	assert.True(t, res.Quantity.Equal(dec("12.5")))
	assert.True(t, s.Quantity(u.ID).Equal(dec("12.5")))
}

func TestLedger_AdjustForPurchase_PermiteNegativo(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)
	s.SeedStock(u, "5")
	l := inventory.NewLedger(false, logger.Nop())

	_, err := runAdjust(t, s, l, false, u.ID, "-10")

	require.NoError(t, err)
	assert.True(t, s.Quantity(u.ID).Equal(dec("-5")))
}

func TestLedger_AdjustManual_RechazaNegativoSinModificar(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)
	s.SeedStock(u, "5")
	l := inventory.NewLedger(false, logger.Nop())

	_, err := runAdjust(t, s, l, true, u.ID, "-10")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.Quantity(u.ID).Equal(dec("5")))
}

func TestLedger_AdjustManual_ExactamenteCeroPermitido(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)
	s.SeedStock(u, "5")
	l := inventory.NewLedger(false, logger.Nop())

	_, err := runAdjust(t, s, l, true, u.ID, "-5")

	require.NoError(t, err)
	assert.True(t, s.Quantity(u.ID).IsZero())
}

func TestLedger_SinFilaDeStock(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)

	t.Run("compra tolerante omite", func(t *testing.T) {
		res, err := runAdjust(t, s, inventory.NewLedger(false, logger.Nop()), false, u.ID, "3")
		require.NoError(t, err)
		assert.False(t, res.Tracked)
	})
	t.Run("compra estricta falla", func(t *testing.T) {
		_, err := runAdjust(t, s, inventory.NewLedger(true, logger.Nop()), false, u.ID, "3")
		assert.ErrorIs(t, err, domain.ErrStockNotTracked)
	})
	t.Run("manual devuelve not found", func(t *testing.T) {
		_, err := runAdjust(t, s, inventory.NewLedger(false, logger.Nop()), true, u.ID, "3")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// +5 y +3 concurrentes sobre 10 deben dar 18 (sin actualizaciones perdidas).
func TestLedger_ConcurrenteSinPerdidas(t *testing.T) {
	s := memstore.New()
	u := seedUnit(t, s)
	s.SeedStock(u, "10")
	l := inventory.NewLedger(false, logger.Nop())

	var wg sync.WaitGroup
	for _, d := range []string{"5", "3"} {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			_, err := runAdjust(t, s, l, false, u.ID, d)
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	assert.True(t, s.Quantity(u.ID).Equal(dec("18")), "got %s", s.Quantity(u.ID))
}
