package bulkimport

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase orquesta el import masivo: reconcilia las filas ya parseadas y
// persiste los productos acumulados en UNA sola escritura por lotes dentro de
// una transacción. Un error de fila no aborta el archivo; un error del lote
// final revierte todo lo acumulado.
type UseCase struct {
	txRunner     ledger.TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso de import.
func NewUseCase(txRunner ledger.TxRunner, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, categoryRepo: categoryRepo}
}

// Import reconcilia y persiste. Devuelve el resultado con los errores por
// línea para que el handler los exponga en el payload.
func (uc *UseCase) Import(ctx context.Context, rows []Row) (*Result, error) {
	result, err := Reconcile(rows, Lookups{
		CategoryByID: uc.categoryRepo.GetByID,
		ProductBySKU: uc.productRepo.GetBySKU,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Products) == 0 {
		return result, nil
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		return productRepo.BulkUpsert(result.Products)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
