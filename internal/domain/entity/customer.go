package entity

import "time"

// Customer representa un cliente del punto de venta.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
