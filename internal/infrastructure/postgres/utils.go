package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-insights/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isNoRows indica si la consulta no devolvió filas.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// wrap traduce un error de pgx a la taxonomía de dominio: violación de unicidad
// como ErrConflict y todo lo demás como TransportError.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return domain.NewTransportError(op, err)
}
