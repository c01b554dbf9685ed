package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem línea de una compra. ProductID siempre es el producto de ProductUnitID.
// Subtotal lo informa el cliente; no se recalcula.
type PurchaseItem struct {
	ID            string
	PurchaseID    string
	ProductID     string
	ProductUnitID string
	Quantity      decimal.Decimal // > 0
	Price         decimal.Decimal
	Subtotal      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Solo lectura: se completan en consultas con JOIN.
	ProductName string
	UnitName    string
}
