package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stocks. El producto se deriva de la unidad.
type CreateStockRequest struct {
	ProductUnitID string          `json:"product_unit_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gte=0"`
	MinimumStock  decimal.Decimal `json:"minimum_stock" validate:"gte=0"`
}

// AdjustStockRequest body para POST /api/stocks/adjust (ajuste manual, no admite stock negativo).
type AdjustStockRequest struct {
	ProductUnitID      string          `json:"product_unit_id" validate:"required,uuid"`
	QuantityAdjustment decimal.Decimal `json:"quantity_adjustment"`
}

// StockResponse salida de una fila de stock.
type StockResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductUnitID string          `json:"product_unit_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	BelowMinimum  bool            `json:"below_minimum"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
