package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock cantidad disponible de una unidad de producto. Hay como máximo una fila por ProductUnitID.
type Stock struct {
	ID            string
	ProductID     string
	ProductUnitID string
	Quantity      decimal.Decimal
	MinimumStock  decimal.Decimal // umbral de reposición
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinimum indica si la cantidad está en o por debajo del umbral de reposición.
func (s *Stock) BelowMinimum() bool {
	return s.Quantity.LessThanOrEqual(s.MinimumStock)
}
