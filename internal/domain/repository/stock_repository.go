package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por unidad de producto.
// Las variantes ForUpdate solo tienen sentido dentro de una transacción.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByProductUnitID(ctx context.Context, productUnitID string) (*entity.Stock, error)
	// GetByProductUnitIDForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	// Devuelve nil, nil si la unidad no tiene fila de stock.
	GetByProductUnitIDForUpdate(ctx context.Context, productUnitID string) (*entity.Stock, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Stock, int, error)
	ListBelowMinimum(ctx context.Context, limit, offset int) ([]*entity.Stock, int, error)
}
