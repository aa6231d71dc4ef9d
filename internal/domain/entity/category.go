package entity

import "time"

// Category agrupa productos. Referenciada por Product.CategoryID.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
