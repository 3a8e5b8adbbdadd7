package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

var _ repository.StockChangeRepository = (*StockChangeRepo)(nil)

// StockChangeRepo lectura del log de movimientos (tabla stock_changes, solo append
// desde el sistema de inventario).
type StockChangeRepo struct {
	q Querier
}

// NewStockChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockChangeRepository(q Querier) *StockChangeRepo {
	return &StockChangeRepo{q: q}
}

// ListAllStockChanges devuelve el log completo en orden cronológico.
func (r *StockChangeRepo) ListAllStockChanges(ctx context.Context) ([]entity.StockChangeEvent, error) {
	query := `
		SELECT id, product_id, product_name, product_color, product_size, quantity, direction, occurred_at
		FROM stock_changes
		ORDER BY occurred_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrap("list_stock_changes", fmt.Errorf("list stock changes: %w", err))
	}
	defer rows.Close()

	events := make([]entity.StockChangeEvent, 0)
	for rows.Next() {
		var e entity.StockChangeEvent
		var direction string
		if err := rows.Scan(
			&e.ID, &e.ProductID, &e.ProductName, &e.ProductColor, &e.ProductSize,
			&e.Quantity, &direction, &e.OccurredAt,
		); err != nil {
			return nil, wrap("list_stock_changes", fmt.Errorf("scan stock change: %w", err))
		}
		e.Direction = entity.StockDirection(direction)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list_stock_changes", err)
	}
	return events, nil
}
