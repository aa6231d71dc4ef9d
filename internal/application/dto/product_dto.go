package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (form multipart en el handler).
type CreateProductRequest struct {
	Name          string          `json:"name" form:"name"`
	SKU           string          `json:"sku" form:"sku"`
	Price         decimal.Decimal `json:"price" form:"price"`
	StockQuantity int             `json:"stockQuantity" form:"stockQuantity"`
	CategoryID    string          `json:"categoryId" form:"categoryId"`
	Description   string          `json:"description" form:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (patch disperso:
// strings vacíos y números negativos se ignoran, como en el resto de updates).
type UpdateProductRequest struct {
	ProductID     string           `json:"productId"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	CategoryID    string           `json:"categoryId"`
	Description   string           `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImagePath     string          `json:"imagePath,omitempty"`
	CategoryID    string          `json:"categoryId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductSummaryResponse resumen de inventario para el dashboard.
type ProductSummaryResponse struct {
	TotalProductsByCategory map[string]int64 `json:"totalProductsByCategory"`
	TotalAvailableStock     int64            `json:"totalAvailableStock"`
}
