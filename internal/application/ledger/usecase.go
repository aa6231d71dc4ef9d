package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase es el libro de stock: registra compras, ventas y devoluciones de
// forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el
// producto y Commit/Rollback del delta de stock junto con el registro de
// auditoría. El usuario actuante llega como parámetro explícito (userID),
// nunca desde un contexto de seguridad ambiente.
type UseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	supplierRepo    repository.SupplierRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository

	// enforceStockFloor: rechazar decrementos que dejarían stock negativo.
	enforceStockFloor bool
}

// NewUseCase construye el ledger.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	enforceStockFloor bool,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		productRepo:       productRepo,
		supplierRepo:      supplierRepo,
		transactionRepo:   transactionRepo,
		userRepo:          userRepo,
		enforceStockFloor: enforceStockFloor,
	}
}

// TransactionDetail transacción enriquecida para la consulta por id.
type TransactionDetail struct {
	Transaction *entity.Transaction
	Product     *entity.Product
	User        *entity.User
	Supplier    *entity.Supplier
}

// Restock registra una compra a proveedor (PURCHASE): stock += quantity,
// totalPrice = precio × cantidad, estado COMPLETED.
func (uc *UseCase) Restock(ctx context.Context, userID string, in dto.TransactionRequest) (*entity.Transaction, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrMissingField
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created *entity.Transaction
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(product.ID, product.StockQuantity+in.Quantity); err != nil {
			return err
		}
		created = &entity.Transaction{
			ID:            uuid.New().String(),
			Type:          entity.TransactionTypePurchase,
			Status:        entity.TransactionStatusCompleted,
			TotalProducts: in.Quantity,
			TotalPrice:    product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Description:   in.Description,
			ProductID:     product.ID,
			UserID:        userID,
			SupplierID:    &in.SupplierID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return transactionRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Sell registra una venta (SALE): stock -= quantity, totalPrice = precio × cantidad,
// estado COMPLETED. Con el floor activo, una venta que dejaría stock negativo
// falla con ErrInsufficientStock antes de escribir nada.
func (uc *UseCase) Sell(ctx context.Context, userID string, in dto.TransactionRequest) (*entity.Transaction, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.Transaction
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.StockQuantity - in.Quantity
		if uc.enforceStockFloor && newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		created = &entity.Transaction{
			ID:            uuid.New().String(),
			Type:          entity.TransactionTypeSale,
			Status:        entity.TransactionStatusCompleted,
			TotalProducts: in.Quantity,
			TotalPrice:    product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Description:   in.Description,
			ProductID:     product.ID,
			UserID:        userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return transactionRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReturnToSupplier registra una devolución a proveedor (RETURN_TO_SUPPLIER):
// stock -= quantity, totalPrice = 0. Nace en PROCESSING porque la devolución
// física queda pendiente de confirmación.
func (uc *UseCase) ReturnToSupplier(ctx context.Context, userID string, in dto.TransactionRequest) (*entity.Transaction, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrMissingField
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var created *entity.Transaction
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.StockQuantity - in.Quantity
		if uc.enforceStockFloor && newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		created = &entity.Transaction{
			ID:            uuid.New().String(),
			Type:          entity.TransactionTypeReturnToSupplier,
			Status:        entity.TransactionStatusProcessing,
			TotalProducts: in.Quantity,
			TotalPrice:    decimal.Zero,
			Description:   in.Description,
			ProductID:     product.ID,
			UserID:        userID,
			SupplierID:    &in.SupplierID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return transactionRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReturnSale revierte una venta (RETURN): recupera producto y cantidad de la
// venta original, stock += cantidad original, totalPrice = -totalPrice original,
// y enlaza la reversa vía OriginalSaleID.
func (uc *UseCase) ReturnSale(ctx context.Context, userID, originalSaleID string, in dto.TransactionRequest) (*entity.Transaction, error) {
	original, err := uc.transactionRepo.GetByID(originalSaleID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}
	if original.Type != entity.TransactionTypeSale {
		return nil, domain.ErrInvalidInput
	}

	var supplierID *string
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		supplierID = &in.SupplierID
	}

	description := in.Description
	if description == "" {
		description = "Devolución de venta " + originalSaleID
	}

	now := time.Now()
	quantity := original.TotalProducts
	var created *entity.Transaction
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForUpdate(original.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(product.ID, product.StockQuantity+quantity); err != nil {
			return err
		}
		created = &entity.Transaction{
			ID:             uuid.New().String(),
			Type:           entity.TransactionTypeReturn,
			Status:         entity.TransactionStatusCompleted,
			TotalProducts:  quantity,
			TotalPrice:     original.TotalPrice.Neg(),
			Description:    description,
			ProductID:      product.ID,
			UserID:         userID,
			SupplierID:     supplierID,
			OriginalSaleID: &original.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return transactionRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus sobreescribe el estado de una transacción y avanza UpdatedAt.
// No se valida una máquina de estados: cualquier estado conocido puede
// reemplazar a cualquier otro, igual que en los clientes existentes.
func (uc *UseCase) UpdateStatus(ctx context.Context, transactionID, status string) error {
	if !entity.ValidTransactionStatus(status) {
		return domain.ErrInvalidInput
	}
	existing, err := uc.transactionRepo.GetByID(transactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	existing.Status = status
	existing.UpdatedAt = time.Now()
	return uc.transactionRepo.UpdateStatus(existing)
}

// Search lista paginada con búsqueda de texto libre, más reciente primero.
func (uc *UseCase) Search(ctx context.Context, searchText string, page, size int) ([]*entity.Transaction, int64, error) {
	if size <= 0 {
		size = 1000
	}
	if page < 0 {
		page = 0
	}
	return uc.transactionRepo.Search(searchText, size, page*size)
}

// ListByMonthAndYear lista transacciones por mes y año de creación.
func (uc *UseCase) ListByMonthAndYear(ctx context.Context, month, year int) ([]*entity.Transaction, error) {
	if month < 1 || month > 12 || year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.transactionRepo.ListByMonthAndYear(month, year)
}

// GetByID devuelve una transacción con producto, usuario actuante y proveedor.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*TransactionDetail, error) {
	tx, err := uc.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	detail := &TransactionDetail{Transaction: tx}
	if detail.Product, err = uc.productRepo.GetByID(tx.ProductID); err != nil {
		return nil, err
	}
	if detail.User, err = uc.userRepo.GetByID(tx.UserID); err != nil {
		return nil, err
	}
	if tx.SupplierID != nil {
		if detail.Supplier, err = uc.supplierRepo.GetByID(*tx.SupplierID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}
