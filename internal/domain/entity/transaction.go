package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de stock.
const (
	TransactionTypePurchase         = "PURCHASE"
	TransactionTypeSale             = "SALE"
	TransactionTypeReturnToSupplier = "RETURN_TO_SUPPLIER"
	TransactionTypeReturn           = "RETURN" // devolución de una venta
)

// Estados de transacción.
const (
	TransactionStatusPending    = "PENDING"
	TransactionStatusProcessing = "PROCESSING"
	TransactionStatusCompleted  = "COMPLETED"
	TransactionStatusCancelled  = "CANCELLED"
)

// Transaction es el registro de auditoría de un movimiento de stock.
// Inmutable salvo Status y UpdatedAt. SupplierID y OriginalSaleID son
// opcionales (nil cuando no aplican).
type Transaction struct {
	ID             string
	Type           string
	Status         string
	TotalProducts  int
	TotalPrice     decimal.Decimal // negativo en devoluciones de venta
	Description    string
	ProductID      string
	UserID         string
	SupplierID     *string
	OriginalSaleID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidTransactionStatus indica si el estado es uno de los conocidos.
func ValidTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusPending, TransactionStatusProcessing,
		TransactionStatusCompleted, TransactionStatusCancelled:
		return true
	}
	return false
}
