package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID    string          `json:"supplier_id" validate:"required,uuid"`
	InvoiceNumber *string         `json:"invoice_number" validate:"omitempty,max=100"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"gte=0"`
}

// UpdatePurchaseRequest body para PATCH /api/purchases/:id.
type UpdatePurchaseRequest struct {
	SupplierID    *string          `json:"supplier_id" validate:"omitempty,uuid"`
	InvoiceNumber *string          `json:"invoice_number" validate:"omitempty,max=100"`
	TotalAmount   *decimal.Decimal `json:"total_amount" validate:"omitempty,gte=0"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplier_id"`
	InvoiceNumber *string         `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreatePurchaseItemRequest body para POST /api/purchase-items.
// No acepta product_id: se deriva siempre de la unidad.
type CreatePurchaseItemRequest struct {
	PurchaseID    string          `json:"purchase_id" validate:"required,uuid"`
	ProductUnitID string          `json:"product_unit_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gt=0"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	Subtotal      decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

// UpdatePurchaseItemRequest body para PATCH /api/purchase-items/:id (parcial).
type UpdatePurchaseItemRequest struct {
	PurchaseID    *string          `json:"purchase_id" validate:"omitempty,uuid"`
	ProductUnitID *string          `json:"product_unit_id" validate:"omitempty,uuid"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Subtotal      *decimal.Decimal `json:"subtotal" validate:"omitempty,gte=0"`
}

// PurchaseItemResponse salida de una línea de compra.
type PurchaseItemResponse struct {
	ID              string          `json:"id"`
	PurchaseID      string          `json:"purchase_id"`
	ProductID       string          `json:"product_id"`
	ProductUnitID   string          `json:"product_unit_id"`
	ProductName     string          `json:"product_name"`
	ProductUnitName string          `json:"product_unit_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
