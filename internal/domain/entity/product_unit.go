package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida soportadas.
const (
	UnitPCS  = "PCS"
	UnitPACK = "PACK"
	UnitSLOP = "SLOP"
	UnitBOX  = "BOX"
	UnitDUS  = "DUS"
)

// ProductUnit es una variante de unidad de medida de un producto (pieza, paquete, caja)
// con su factor de conversión a la unidad base.
type ProductUnit struct {
	ID               string
	ProductID        string
	UnitName         string
	Barcode          string
	ConversionToBase decimal.Decimal // > 0
	IsBaseUnit       bool
	IsDeleted        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValidUnitName indica si el nombre de unidad está dentro del catálogo.
func IsValidUnitName(name string) bool {
	switch name {
	case UnitPCS, UnitPACK, UnitSLOP, UnitBOX, UnitDUS:
		return true
	}
	return false
}
