package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// stockStatusSource lo implementa *inventory.StatusUseCase.
type stockStatusSource interface {
	List(ctx context.Context, filter entity.StockStatus) (*dto.ProductStatusListDTO, error)
}

// ReportUseCase genera el reporte de ventas en PDF y registra el evento report_generated.
type ReportUseCase struct {
	sales    *SalesAnalyticsUseCase
	stock    stockStatusSource
	renderer ports.SalesReportRenderer
	events   ports.EventPublisher
	actors   ports.ActorProvider
	log      zerolog.Logger
}

// NewReportUseCase construye el caso de uso. stock y events pueden ser nil.
func NewReportUseCase(
	sales *SalesAnalyticsUseCase,
	stock stockStatusSource,
	renderer ports.SalesReportRenderer,
	events ports.EventPublisher,
	actors ports.ActorProvider,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{sales: sales, stock: stock, renderer: renderer, events: events, actors: actors, log: log}
}

// SalesPDF genera el PDF. Falla si no se puede leer el log de movimientos; el
// resumen de inventario se omite si los productos no están disponibles.
func (uc *ReportUseCase) SalesPDF(ctx context.Context) ([]byte, error) {
	overview, err := uc.sales.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	var stock *dto.ProductStatusListDTO
	if uc.stock != nil {
		if stock, err = uc.stock.List(ctx, ""); err != nil {
			uc.log.Warn().Err(err).Msg("reporte sin resumen de inventario")
			stock = nil
		}
	}

	actor := entity.UnknownActor
	if uc.actors != nil {
		actor = uc.actors.CurrentActor(ctx)
	}

	doc, err := uc.renderer.RenderSalesReport(ctx, ports.SalesReportData{
		Overview: overview,
		Stock:    stock,
		Author:   actor.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	if uc.events != nil {
		ev := entity.DomainEvent{
			Kind:       entity.EventReportGenerated,
			EntityType: "report",
			Name:       "Reporte de ventas " + overview.DateLabel,
			Actor:      &actor,
			OccurredAt: overview.GeneratedAt,
		}
		if err := uc.events.Publish(ctx, ev); err != nil {
			uc.log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("no se pudo publicar el evento del reporte")
		}
	}
	return doc, nil
}
