package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest entrada común de las operaciones del ledger
// (purchase, sell, return). SupplierID es obligatorio en purchase y return.
type TransactionRequest struct {
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	SupplierID  string `json:"supplierId"`
	Description string `json:"description"`
}

// UpdateTransactionStatusRequest entrada para cambiar el estado de una transacción.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status"`
}

// TransactionResponse salida de una transacción. Product, User y Supplier
// solo se pueblan en la consulta por id; los listados devuelven filas planas
// para evitar payloads anidados sin cota.
type TransactionResponse struct {
	ID             string            `json:"id"`
	Type           string            `json:"transactionType"`
	Status         string            `json:"status"`
	TotalProducts  int               `json:"totalProducts"`
	TotalPrice     decimal.Decimal   `json:"totalPrice"`
	Description    string            `json:"description,omitempty"`
	ProductID      string            `json:"productId"`
	OriginalSaleID string            `json:"originalSaleId,omitempty"`
	Product        *ProductResponse  `json:"product,omitempty"`
	User           *UserResponse     `json:"user,omitempty"`
	Supplier       *SupplierResponse `json:"supplier,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
