package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para Transaction.
// Las transacciones son append-only: Create inserta, UpdateStatus es la única
// mutación permitida después.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// Search lista paginada con búsqueda de texto libre sobre descripción,
	// tipo, estado y nombre del producto. Devuelve también el total para paginar.
	Search(searchText string, limit, offset int) ([]*entity.Transaction, int64, error)
	ListByMonthAndYear(month, year int) ([]*entity.Transaction, error)
	ListByUser(userID string) ([]*entity.Transaction, error)
	UpdateStatus(tx *entity.Transaction) error
}
