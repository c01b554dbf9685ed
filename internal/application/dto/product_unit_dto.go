package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductUnitRequest body para POST /api/products/:id/units.
type CreateProductUnitRequest struct {
	UnitName         string          `json:"unit_name" validate:"required,oneof=PCS PACK SLOP BOX DUS"`
	Barcode          string          `json:"barcode" validate:"max=64"`
	ConversionToBase decimal.Decimal `json:"conversion_to_base" validate:"gt=0"`
	IsBaseUnit       bool            `json:"is_base_unit"`
}

// UpdateProductUnitRequest body para PUT /api/units/:unitId.
type UpdateProductUnitRequest struct {
	UnitName         *string          `json:"unit_name" validate:"omitempty,oneof=PCS PACK SLOP BOX DUS"`
	Barcode          *string          `json:"barcode" validate:"omitempty,max=64"`
	ConversionToBase *decimal.Decimal `json:"conversion_to_base" validate:"omitempty,gt=0"`
	IsBaseUnit       *bool            `json:"is_base_unit"`
}

// ProductUnitResponse salida de una unidad de producto.
type ProductUnitResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	UnitName         string          `json:"unit_name"`
	Barcode          string          `json:"barcode"`
	ConversionToBase decimal.Decimal `json:"conversion_to_base"`
	IsBaseUnit       bool            `json:"is_base_unit"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreateUnitPriceRequest body para POST /api/units/:id/prices. Fechas en formato YYYY-MM-DD.
type CreateUnitPriceRequest struct {
	PriceType  string          `json:"price_type" validate:"required,oneof=RETAIL WHOLESALE MEMBER"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	MinimumQty decimal.Decimal `json:"minimum_qty" validate:"gte=0"`
	StartDate  *string         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateUnitPriceRequest body para PUT /api/prices/:priceId.
type UpdateUnitPriceRequest struct {
	PriceType  *string          `json:"price_type" validate:"omitempty,oneof=RETAIL WHOLESALE MEMBER"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	MinimumQty *decimal.Decimal `json:"minimum_qty" validate:"omitempty,gte=0"`
	StartDate  *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// UnitPriceResponse salida de un precio por unidad.
type UnitPriceResponse struct {
	ID            string          `json:"id"`
	ProductUnitID string          `json:"product_unit_id"`
	PriceType     string          `json:"price_type"`
	Price         decimal.Decimal `json:"price"`
	MinimumQty    decimal.Decimal `json:"minimum_qty"`
	StartDate     *string         `json:"start_date"`
	EndDate       *string         `json:"end_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
