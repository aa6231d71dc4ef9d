package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategorySummary conteo de productos por categoría para el resumen.
type CategorySummary struct {
	CategoryName string
	Count        int64
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); solo
	// tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stockQuantity int) error
	List() ([]*entity.Product, error)
	// BulkUpsert inserta o actualiza por SKU todos los productos en un solo lote.
	BulkUpsert(products []*entity.Product) error
	Summary() ([]CategorySummary, int64, error)
	Delete(id string) error
}
