package entity

import "time"

// Supplier representa un proveedor, referenciado por transacciones
// PURCHASE y RETURN_TO_SUPPLIER.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
