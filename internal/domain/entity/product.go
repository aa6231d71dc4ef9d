package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// StockQuantity solo se modifica vía el libro de stock (ledger) o el import masivo;
// la relación con Category es una FK plana, nunca un grafo de objetos.
type Product struct {
	ID            string
	SKU           string // código único (clave natural para el upsert del import)
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, no negativo
	StockQuantity int
	ImagePath     string
	CategoryID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
