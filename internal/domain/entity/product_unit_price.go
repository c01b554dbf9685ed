package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precio por unidad.
const (
	PriceTypeRetail    = "RETAIL"
	PriceTypeWholesale = "WHOLESALE"
	PriceTypeMember    = "MEMBER"
)

// ProductUnitPrice precio escalonado de una unidad: aplica desde MinimumQty y dentro de
// la vigencia [StartDate, EndDate]. EndDate nil = sin fecha de fin.
type ProductUnitPrice struct {
	ID            string
	ProductUnitID string
	PriceType     string
	Price         decimal.Decimal
	MinimumQty    decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidPriceType indica si el tipo de precio está dentro del catálogo.
func IsValidPriceType(t string) bool {
	switch t {
	case PriceTypeRetail, PriceTypeWholesale, PriceTypeMember:
		return true
	}
	return false
}

// ActiveAt indica si el precio está vigente en el instante dado.
func (p *ProductUnitPrice) ActiveAt(t time.Time) bool {
	if p.IsDeleted {
		return false
	}
	if p.StartDate != nil && t.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && t.After(*p.EndDate) {
		return false
	}
	return true
}
