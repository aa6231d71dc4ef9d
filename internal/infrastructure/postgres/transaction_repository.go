package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, type, status, total_products, total_price, description,
		product_id, user_id, supplier_id, original_sale_id, created_at, updated_at`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransactionRow(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.Type, &t.Status, &t.TotalProducts, &t.TotalPrice,
		&t.Description, &t.ProductID, &t.UserID, &t.SupplierID, &t.OriginalSaleID,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta una transacción. Los registros son append-only.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, type, status, total_products, total_price, description,
			 product_id, user_id, supplier_id, original_sale_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Type, tx.Status, tx.TotalProducts, tx.TotalPrice, tx.Description,
		tx.ProductID, tx.UserID, tx.SupplierID, tx.OriginalSaleID, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID. Devuelve nil, nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransactionRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// Search lista transacciones paginadas con búsqueda de texto libre sobre
// descripción, tipo, estado y nombre del producto asociado. Devuelve el total
// de coincidencias para calcular páginas.
func (r *TransactionRepo) Search(searchText string, limit, offset int) ([]*entity.Transaction, int64, error) {
	pattern := "%" + searchText + "%"
	ctx := context.Background()

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.description ILIKE $1 OR t.type ILIKE $1 OR t.status ILIKE $1 OR p.name ILIKE $1`
	if err := r.q.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `
		SELECT t.id, t.type, t.status, t.total_products, t.total_price, t.description,
		       t.product_id, t.user_id, t.supplier_id, t.original_sale_id, t.created_at, t.updated_at
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.description ILIKE $1 OR t.type ILIKE $1 OR t.status ILIKE $1 OR p.name ILIKE $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search transactions: %w", err)
	}
	defer rows.Close()
	list, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByMonthAndYear lista las transacciones creadas en el mes y año dados.
func (r *TransactionRepo) ListByMonthAndYear(month, year int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE EXTRACT(MONTH FROM created_at) = $1 AND EXTRACT(YEAR FROM created_at) = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, month, year)
	if err != nil {
		return nil, fmt.Errorf("list transactions by month: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListByUser lista las transacciones registradas por un usuario.
func (r *TransactionRepo) ListByUser(userID string) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by user: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// UpdateStatus persiste el cambio de estado y la marca de actualización.
func (r *TransactionRepo) UpdateStatus(tx *entity.Transaction) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE transactions SET status = $2, updated_at = $3 WHERE id = $1`,
		tx.ID, tx.Status, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	return nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Status, &t.TotalProducts, &t.TotalPrice,
			&t.Description, &t.ProductID, &t.UserID, &t.SupplierID, &t.OriginalSaleID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
