package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCategoryRequest actualización parcial de categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePartyRequest entrada para crear un cliente o proveedor (mismos campos).
type CreatePartyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=150"`
	Phone   string `json:"phone" validate:"max=30"`
	Address string `json:"address" validate:"max=300"`
}

// UpdatePartyRequest actualización parcial de cliente o proveedor.
type UpdatePartyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=150"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// PartyResponse salida de cliente o proveedor.
type PartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU        string `json:"sku" validate:"required,min=1,max=100"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Brand      string `json:"brand" validate:"max=100"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	SKU        *string `json:"sku" validate:"omitempty,min=1,max=100"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	Brand      *string `json:"brand" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	Brand      string    `json:"brand"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
