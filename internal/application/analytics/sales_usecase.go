// Package analytics contiene la analítica de ventas derivada del log de movimientos
// de stock: rollup mensual, top de productos y feed de ventas recientes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

const (
	DefaultTopN   = 5 // número de productos en el widget del dashboard
	DefaultRecent = 5 // ventas en el feed reciente
	maxListSize   = 50
)

// SalesAnalyticsUseCase lee el log completo de movimientos y recalcula las vistas bajo demanda.
//
// Fuente de datos: StockChangeRepository (read-only). No guarda estado incremental
// entre llamadas; cada cálculo parte de una lectura nueva del log.
type SalesAnalyticsUseCase struct {
	repo repository.StockChangeRepository
	loc  *time.Location
	topN int
	now  func() time.Time
	log  zerolog.Logger
}

// NewSalesAnalyticsUseCase construye el caso de uso. loc es la zona de los reportes.
func NewSalesAnalyticsUseCase(
	repo repository.StockChangeRepository,
	loc *time.Location,
	topN int,
	log zerolog.Logger,
) *SalesAnalyticsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &SalesAnalyticsUseCase{repo: repo, loc: loc, topN: topN, now: time.Now, log: log}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesAnalyticsUseCase) WithClock(now func() time.Time) *SalesAnalyticsUseCase {
	uc.now = now
	return uc
}

// GetOverview construye las tres vistas del dashboard a partir de una sola lectura del log.
// Si la lectura falla devuelve la línea base vacía junto con el error.
//
// Las tres vistas se calculan en paralelo sobre el mismo slice (solo lectura):
//  1. MonthlyRollup       → Monthly
//  2. TopSellers(top N)   → TopSellers
//  3. RecentTransactions  → Recent
func (uc *SalesAnalyticsUseCase) GetOverview(ctx context.Context) (*dto.SalesOverviewDTO, error) {
	now := uc.now().In(uc.loc)

	events, err := uc.loadEvents(ctx)
	if err != nil {
		return dto.EmptySalesOverview(now), err
	}

	monthlyCh := make(chan []dto.MonthlySalesDTO, 1)
	topCh := make(chan []dto.TopSellerDTO, 1)
	recentCh := make(chan []dto.RecentTransactionDTO, 1)

	go func() { monthlyCh <- MonthlyRollup(events, now) }()
	go func() { topCh <- TopSellers(events, uc.topN) }()
	go func() { recentCh <- RecentTransactions(events, DefaultRecent, uc.loc) }()

	monthly := <-monthlyCh
	total := 0
	for _, b := range monthly {
		total += b.Quantity
	}

	return &dto.SalesOverviewDTO{
		Monthly:     monthly,
		TopSellers:  <-topCh,
		Recent:      <-recentCh,
		TotalUnits:  total,
		DateLabel:   monthLabel(now),
		GeneratedAt: now,
	}, nil
}

// GetMonthly devuelve solo el rollup mensual.
func (uc *SalesAnalyticsUseCase) GetMonthly(ctx context.Context) ([]dto.MonthlySalesDTO, error) {
	events, err := uc.loadEvents(ctx)
	if err != nil {
		return []dto.MonthlySalesDTO{}, err
	}
	return MonthlyRollup(events, uc.now().In(uc.loc)), nil
}

// GetTopSellers devuelve el top n (n <= 0 usa el valor configurado).
func (uc *SalesAnalyticsUseCase) GetTopSellers(ctx context.Context, n int) ([]dto.TopSellerDTO, error) {
	events, err := uc.loadEvents(ctx)
	if err != nil {
		return []dto.TopSellerDTO{}, err
	}
	return TopSellers(events, clampList(n, uc.topN)), nil
}

// GetRecent devuelve las n ventas más recientes (n <= 0 usa DefaultRecent).
func (uc *SalesAnalyticsUseCase) GetRecent(ctx context.Context, n int) ([]dto.RecentTransactionDTO, error) {
	events, err := uc.loadEvents(ctx)
	if err != nil {
		return []dto.RecentTransactionDTO{}, err
	}
	return RecentTransactions(events, clampList(n, DefaultRecent), uc.loc), nil
}

// loadEvents lee el log y normaliza errores no tipados como fallos de transporte.
func (uc *SalesAnalyticsUseCase) loadEvents(ctx context.Context) ([]entity.StockChangeEvent, error) {
	events, err := uc.repo.ListAllStockChanges(ctx)
	if err != nil {
		if !domain.IsReadFailure(err) {
			err = domain.NewTransportError("list_stock_changes", err)
		}
		uc.log.Warn().Err(err).Msg("no se pudo leer el log de movimientos")
		return nil, fmt.Errorf("analytics: movimientos: %w", err)
	}
	return events, nil
}

func clampList(n, def int) int {
	if n <= 0 {
		return def
	}
	if n > maxListSize {
		return maxListSize
	}
	return n
}
