package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		m.products[p.ID] = &cp
	}
	return m
}

func (m *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return m.GetByID(id)
}

func (m *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) UpdateStock(productID string, stockQuantity int) error {
	p, ok := m.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = stockQuantity
	return nil
}

func (m *memProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProductRepo) BulkUpsert(products []*entity.Product) error {
	for _, p := range products {
		cp := *p
		m.products[p.ID] = &cp
	}
	return nil
}

func (m *memProductRepo) Summary() ([]repository.CategorySummary, int64, error) {
	return nil, 0, nil
}

func (m *memProductRepo) Delete(id string) error {
	delete(m.products, id)
	return nil
}

type memTransactionRepo struct {
	transactions map[string]*entity.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[string]*entity.Transaction)}
}

func (m *memTransactionRepo) Create(tx *entity.Transaction) error {
	cp := *tx
	m.transactions[tx.ID] = &cp
	return nil
}

func (m *memTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (m *memTransactionRepo) Search(searchText string, limit, offset int) ([]*entity.Transaction, int64, error) {
	var out []*entity.Transaction
	for _, tx := range m.transactions {
		cp := *tx
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *memTransactionRepo) ListByMonthAndYear(month, year int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.transactions {
		if int(tx.CreatedAt.Month()) == month && tx.CreatedAt.Year() == year {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTransactionRepo) ListByUser(userID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTransactionRepo) UpdateStatus(tx *entity.Transaction) error {
	existing, ok := m.transactions[tx.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = tx.Status
	existing.UpdatedAt = tx.UpdatedAt
	return nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newMemSupplierRepo(suppliers ...*entity.Supplier) *memSupplierRepo {
	m := &memSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	for _, s := range suppliers {
		cp := *s
		m.suppliers[s.ID] = &cp
	}
	return m
}

func (m *memSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	m.suppliers[s.ID] = &cp
	return nil
}

func (m *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSupplierRepo) List() ([]*entity.Supplier, error) { return nil, nil }
func (m *memSupplierRepo) Update(s *entity.Supplier) error   { return nil }
func (m *memSupplierRepo) Delete(id string) error            { return nil }

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		cp := *u
		m.users[u.ID] = &cp
	}
	return m
}

func (m *memUserRepo) Create(u *entity.User) error { return nil }

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (m *memUserRepo) List() ([]*entity.User, error)                 { return nil, nil }
func (m *memUserRepo) Update(u *entity.User) error                   { return nil }
func (m *memUserRepo) Delete(id string) error                        { return nil }

// memTxRunner ejecuta la unidad de trabajo directamente sobre los repos en
// memoria. Si fn falla, descarta los cambios restaurando un snapshot, igual
// que haría el Rollback real.
type memTxRunner struct {
	products     *memProductRepo
	transactions *memTransactionRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.TransactionRepository) error) error {
	productSnapshot := make(map[string]*entity.Product, len(r.products.products))
	for id, p := range r.products.products {
		cp := *p
		productSnapshot[id] = &cp
	}
	txSnapshot := make(map[string]*entity.Transaction, len(r.transactions.transactions))
	for id, tx := range r.transactions.transactions {
		cp := *tx
		txSnapshot[id] = &cp
	}
	if err := fn(r.products, r.transactions); err != nil {
		r.products.products = productSnapshot
		r.transactions.transactions = txSnapshot
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID  = "00000000-0000-0000-0000-00000000000a"
	supplierID = "00000000-0000-0000-0000-00000000000b"
	userID     = "00000000-0000-0000-0000-00000000000c"
)

type fixture struct {
	products     *memProductRepo
	transactions *memTransactionRepo
	suppliers    *memSupplierRepo
	users        *memUserRepo
	uc           *ledger.UseCase
}

func newFixture(t *testing.T, stock int, enforceFloor bool) *fixture {
	t.Helper()
	now := time.Now()
	products := newMemProductRepo(&entity.Product{
		ID:            productID,
		SKU:           "SKU-001",
		Name:          "Martillo",
		Price:         decimal.NewFromInt(25),
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	transactions := newMemTransactionRepo()
	suppliers := newMemSupplierRepo(&entity.Supplier{ID: supplierID, Name: "Ferretería Central"})
	users := newMemUserRepo(&entity.User{ID: userID, Email: "admin@almacen.test", Role: entity.RoleAdmin})
	runner := &memTxRunner{products: products, transactions: transactions}
	uc := ledger.NewUseCase(runner, products, suppliers, transactions, users, enforceFloor)
	return &fixture{
		products:     products,
		transactions: transactions,
		suppliers:    suppliers,
		users:        users,
		uc:           uc,
	}
}

func (f *fixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock (PURCHASE)
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_IncrementaStockYRegistraCompra(t *testing.T) {
	f := newFixture(t, 10, true)

	tx, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   5,
		SupplierID: supplierID,
	})
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, entity.TransactionTypePurchase, tx.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, 5, tx.TotalProducts)
	assert.True(t, tx.TotalPrice.Equal(decimal.NewFromInt(125)),
		"totalPrice debe ser precio unitario × cantidad")
	require.NotNil(t, tx.SupplierID)
	assert.Equal(t, supplierID, *tx.SupplierID)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, 15, f.stockOf(t, productID))

	persisted, err := f.transactions.GetByID(tx.ID)
	require.NoError(t, err)
	assert.NotNil(t, persisted, "la transacción debe quedar persistida")
}

func TestRestock_SinProveedor_FallaSinTocarStock(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Equal(t, 10, f.stockOf(t, productID), "el stock no debe cambiar")
	assert.Empty(t, f.transactions.transactions, "no debe registrarse ninguna transacción")
}

func TestRestock_ProveedorInexistente_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   5,
		SupplierID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.stockOf(t, productID))
}

func TestRestock_CantidadInvalida_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   0,
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sell (SALE)
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_DecrementaStockYRegistraVenta(t *testing.T) {
	f := newFixture(t, 10, true)

	tx, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeSale, tx.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, tx.Status)
	assert.True(t, tx.TotalPrice.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, tx.SupplierID, "una venta no lleva proveedor")
	assert.Equal(t, 6, f.stockOf(t, productID))
}

func TestSell_StockInsuficiente_ConFloorActivo(t *testing.T) {
	f := newFixture(t, 3, true)

	_, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stockOf(t, productID), "el stock no debe cambiar tras el rollback")
	assert.Empty(t, f.transactions.transactions)
}

func TestSell_StockNegativoPermitido_ConFloorInactivo(t *testing.T) {
	f := newFixture(t, 3, false)

	tx, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  5,
	})
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, -2, f.stockOf(t, productID),
		"con el floor desactivado el stock puede quedar negativo")
}

func TestSell_ProductoInexistente_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: "no-existe",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReturnToSupplier (RETURN_TO_SUPPLIER)
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnToSupplier_DecrementaStockEnProcessing(t *testing.T) {
	f := newFixture(t, 10, true)

	tx, err := f.uc.ReturnToSupplier(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   3,
		SupplierID: supplierID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeReturnToSupplier, tx.Type)
	assert.Equal(t, entity.TransactionStatusProcessing, tx.Status,
		"la devolución a proveedor nace en PROCESSING")
	assert.True(t, tx.TotalPrice.IsZero(), "la devolución a proveedor no tiene importe")
	assert.Equal(t, 7, f.stockOf(t, productID))
}

func TestReturnToSupplier_SinProveedor_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.ReturnToSupplier(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  3,
	})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestReturnToSupplier_StockInsuficiente_Falla(t *testing.T) {
	f := newFixture(t, 2, true)

	_, err := f.uc.ReturnToSupplier(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   3,
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.stockOf(t, productID))
}

// ──────────────────────────────────────────────────────────────────────────────
// ReturnSale (RETURN)
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnSale_RevierteLaVentaOriginal(t *testing.T) {
	f := newFixture(t, 10, true)

	sale, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.stockOf(t, productID))

	ret, err := f.uc.ReturnSale(context.Background(), userID, sale.ID, dto.TransactionRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeReturn, ret.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, ret.Status)
	assert.Equal(t, 4, ret.TotalProducts, "la reversa usa la cantidad de la venta original")
	assert.True(t, ret.TotalPrice.Equal(decimal.NewFromInt(-100)),
		"el importe de la reversa es el negativo del original")
	require.NotNil(t, ret.OriginalSaleID)
	assert.Equal(t, sale.ID, *ret.OriginalSaleID)
	assert.Equal(t, "Devolución de venta "+sale.ID, ret.Description)
	assert.Equal(t, 10, f.stockOf(t, productID), "el stock vuelve al valor previo a la venta")
}

func TestReturnSale_DescripcionExplicitaSeConserva(t *testing.T) {
	f := newFixture(t, 10, true)

	sale, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  2,
	})
	require.NoError(t, err)

	ret, err := f.uc.ReturnSale(context.Background(), userID, sale.ID, dto.TransactionRequest{
		Description: "cliente insatisfecho",
	})
	require.NoError(t, err)
	assert.Equal(t, "cliente insatisfecho", ret.Description)
}

func TestReturnSale_TransaccionOriginalNoEsVenta_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	purchase, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   5,
		SupplierID: supplierID,
	})
	require.NoError(t, err)

	_, err = f.uc.ReturnSale(context.Background(), userID, purchase.ID, dto.TransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"solo una SALE puede revertirse")
}

func TestReturnSale_VentaInexistente_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.ReturnSale(context.Background(), userID, "no-existe", dto.TransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_CambiaEstadoYAvanzaUpdatedAt(t *testing.T) {
	f := newFixture(t, 10, true)

	tx, err := f.uc.ReturnToSupplier(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   1,
		SupplierID: supplierID,
	})
	require.NoError(t, err)
	require.Equal(t, entity.TransactionStatusProcessing, tx.Status)

	err = f.uc.UpdateStatus(context.Background(), tx.ID, entity.TransactionStatusCompleted)
	require.NoError(t, err)

	updated, err := f.transactions.GetByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, updated.Status)
	assert.True(t, !updated.UpdatedAt.Before(tx.UpdatedAt))
}

func TestUpdateStatus_EstadoDesconocido_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	err := f.uc.UpdateStatus(context.Background(), "cualquiera", "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_TransaccionInexistente_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	err := f.uc.UpdateStatus(context.Background(), "no-existe", entity.TransactionStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByMonthAndYear_MesInvalido_Falla(t *testing.T) {
	f := newFixture(t, 10, true)

	_, err := f.uc.ListByMonthAndYear(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ListByMonthAndYear(context.Background(), 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_EnriqueceConProductoUsuarioYProveedor(t *testing.T) {
	f := newFixture(t, 10, true)

	tx, err := f.uc.Restock(context.Background(), userID, dto.TransactionRequest{
		ProductID:  productID,
		Quantity:   2,
		SupplierID: supplierID,
	})
	require.NoError(t, err)

	detail, err := f.uc.GetByID(context.Background(), tx.ID)
	require.NoError(t, err)

	require.NotNil(t, detail.Product)
	assert.Equal(t, productID, detail.Product.ID)
	require.NotNil(t, detail.User)
	assert.Equal(t, userID, detail.User.ID)
	require.NotNil(t, detail.Supplier)
	assert.Equal(t, supplierID, detail.Supplier.ID)
}

func TestGetByID_VentaSinProveedor_SupplierNil(t *testing.T) {
	f := newFixture(t, 10, true)

	sale, err := f.uc.Sell(context.Background(), userID, dto.TransactionRequest{
		ProductID: productID,
		Quantity:  1,
	})
	require.NoError(t, err)

	detail, err := f.uc.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Supplier)
}
