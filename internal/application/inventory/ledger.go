package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// AdjustResult resultado de un ajuste de stock.
type AdjustResult struct {
	ProductUnitID string
	Tracked       bool // false si la unidad no tiene fila de stock y el ajuste se omitió
	Previous      decimal.Decimal
	Quantity      decimal.Decimal
}

// Ledger es el único punto que modifica cantidades de stock. Cada ajuste es
// lectura-modificación-escritura bajo el bloqueo de fila de la transacción del llamador:
// dos ajustes sobre la misma unidad se serializan, unidades distintas avanzan en paralelo.
type Ledger struct {
	strictTracking bool
	log            *logger.Logger
}

// NewLedger construye el libro de stock. strictTracking hace que ajustar una unidad sin
// fila de stock falle con domain.ErrStockNotTracked en vez de omitirse con un warning.
func NewLedger(strictTracking bool, log *logger.Logger) *Ledger {
	return &Ledger{strictTracking: strictTracking, log: log.Component("stock-ledger")}
}

// StrictTracking indica el modo configurado.
func (l *Ledger) StrictTracking() bool { return l.strictTracking }

// AdjustForPurchase ajuste derivado de líneas de compra: el stock puede quedar negativo (se registra warning).
func (l *Ledger) AdjustForPurchase(ctx context.Context, stocks repository.StockRepository, d invdomain.StockDelta) (*AdjustResult, error) {
	return l.adjust(ctx, stocks, d, true)
}

// AdjustManual ajuste manual de stock: exige fila de stock (domain.ErrNotFound) y rechaza
// un resultado negativo con domain.ErrInsufficientStock sin modificar la fila.
func (l *Ledger) AdjustManual(ctx context.Context, stocks repository.StockRepository, d invdomain.StockDelta) (*AdjustResult, error) {
	return l.adjust(ctx, stocks, d, false)
}

func (l *Ledger) adjust(ctx context.Context, stocks repository.StockRepository, d invdomain.StockDelta, purchasePath bool) (*AdjustResult, error) {
	// Bloquea la fila de stock (SELECT FOR UPDATE) hasta el fin de la transacción
	stock, err := stocks.GetByProductUnitIDForUpdate(ctx, d.ProductUnitID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		if !purchasePath {
			return nil, fmt.Errorf("%w: stock de la unidad %s", domain.ErrNotFound, d.ProductUnitID)
		}
		if l.strictTracking {
			return nil, fmt.Errorf("%w: %s", domain.ErrStockNotTracked, d.ProductUnitID)
		}
		l.log.Warn().
			Str("product_unit_id", d.ProductUnitID).
			Str("delta", d.Delta.String()).
			Msg("unidad sin fila de stock, ajuste omitido")
		return &AdjustResult{ProductUnitID: d.ProductUnitID, Tracked: false}, nil
	}

	newQty, negative := invdomain.ApplyDelta(stock.Quantity, d.Delta)
	if negative {
		if !purchasePath {
			return nil, fmt.Errorf("%w: disponible %s, ajuste %s", domain.ErrInsufficientStock, stock.Quantity, d.Delta)
		}
		l.log.Warn().
			Str("product_unit_id", d.ProductUnitID).
			Str("previous", stock.Quantity.String()).
			Str("quantity", newQty.String()).
			Msg("stock negativo por línea de compra")
	}

	if err := stocks.UpdateQuantity(ctx, stock.ID, newQty); err != nil {
		return nil, err
	}
	return &AdjustResult{
		ProductUnitID: d.ProductUnitID,
		Tracked:       true,
		Previous:      stock.Quantity,
		Quantity:      newQty,
	}, nil
}
