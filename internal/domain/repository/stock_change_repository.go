package repository

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// StockChangeRepository fuente del log de movimientos de stock (read-only).
// La analítica de ventas lo lee completo una vez por cálculo; no hay camino de escritura.
type StockChangeRepository interface {
	ListAllStockChanges(ctx context.Context) ([]entity.StockChangeEvent, error)
}
