package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlState extrae el código SQLSTATE de un error de pgx, o cadena vacía si
// el error no viene del servidor.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation: violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return sqlState(err) == "23505"
}

// isForeignKeyViolation: violación de clave foránea (23503). Ocurre al borrar
// un producto con transacciones o una categoría con productos.
func isForeignKeyViolation(err error) bool {
	return sqlState(err) == "23503"
}
