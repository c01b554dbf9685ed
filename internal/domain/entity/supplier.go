package entity

import "time"

// Supplier representa un proveedor al que se le registran compras.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
