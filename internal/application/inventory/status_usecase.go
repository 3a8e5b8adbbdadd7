// Package inventory expone el estado de stock derivado de cada producto.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/inventory"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

// StatusUseCase clasifica los productos en En stock / Reabastecer / Agotado.
type StatusUseCase struct {
	products repository.ProductRepository
	log      zerolog.Logger
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(products repository.ProductRepository, log zerolog.Logger) *StatusUseCase {
	return &StatusUseCase{products: products, log: log}
}

// statusRank orden de urgencia: agotados primero, luego reabastecer.
var statusRank = map[entity.StockStatus]int{
	entity.StatusOutOfStock: 0,
	entity.StatusRestock:    1,
	entity.StatusInStock:    2,
}

// List devuelve los productos con su estado. filter vacío devuelve todos; el
// resumen siempre cubre el inventario completo.
//
// Orden: urgencia (Agotado, Reabastecer, En stock) y después nombre.
func (uc *StatusUseCase) List(ctx context.Context, filter entity.StockStatus) (*dto.ProductStatusListDTO, error) {
	if filter != "" && !filter.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("estado desconocido %q", filter)}
	}

	products, err := uc.products.ListAll(ctx)
	if err != nil {
		if !domain.IsReadFailure(err) {
			err = domain.NewTransportError("list_products", err)
		}
		uc.log.Warn().Err(err).Msg("no se pudieron leer los productos")
		return nil, err
	}

	out := &dto.ProductStatusListDTO{
		Items:   make([]dto.ProductStatusDTO, 0, len(products)),
		Summary: dto.StockSummaryDTO{TotalValue: decimal.Zero},
	}
	for _, p := range products {
		item := toStatusDTO(p)
		out.Summary.Add(item)
		if filter == "" || entity.StockStatus(item.Status) == filter {
			out.Items = append(out.Items, item)
		}
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		ra, rb := statusRank[entity.StockStatus(a.Status)], statusRank[entity.StockStatus(b.Status)]
		if ra != rb {
			return ra < rb
		}
		return a.Name < b.Name
	})
	return out, nil
}

// Get devuelve el estado de un producto; domain.ErrNotFound si no existe.
func (uc *StatusUseCase) Get(ctx context.Context, id string) (*dto.ProductStatusDTO, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		if !domain.IsReadFailure(err) {
			err = domain.NewTransportError("get_product", err)
		}
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	item := toStatusDTO(*p)
	return &item, nil
}

func toStatusDTO(p entity.Product) dto.ProductStatusDTO {
	status := inventory.ClassifyProduct(p)
	return dto.ProductStatusDTO{
		ID:                p.ID,
		Name:              p.Name,
		Color:             p.Color,
		Size:              p.Size,
		Unit:              p.Unit,
		ActualQuantity:    p.ActualQuantity,
		ThresholdQuantity: p.ThresholdQuantity,
		Status:            string(status),
		StatusLabel:       status.Label(),
		StockValue:        p.StockValue(),
	}
}
