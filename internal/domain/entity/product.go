package entity

import "time"

// Product representa un producto del catálogo. Las cantidades y precios viven en sus
// unidades de medida (ProductUnit), no en el producto.
type Product struct {
	ID         string
	SKU        string // único
	Name       string
	CategoryID string
	Brand      string
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
