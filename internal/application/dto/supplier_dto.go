package dto

import "time"

// SupplierRequest entrada para crear o actualizar un proveedor (patch disperso).
type SupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
	Address     string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
