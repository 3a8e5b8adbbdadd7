package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

const (
	rollupMonths = 12                 // ventana móvil del gráfico mensual
	recentLayout = "02/01/2006 15:04" // formato del feed de ventas recientes
)

var (
	shortMonths = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	longMonths  = [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
)

// ── Rollup mensual ────────────────────────────────────────────────────────────

// MonthlyRollup suma las salidas de los últimos 12 meses (incluido el actual),
// del más antiguo al más reciente.
//
// Solo cuentan los eventos en la ventana (now-12 meses, now]. Dentro de la ventana
// el balde se elige por NOMBRE de mes, no por año+mes: la cola del mes inicial
// del año anterior (ej. 20-31 oct 2025 con now = 16 oct 2026) cae en el balde
// "Oct" junto con el mes en curso. Es una simplificación intencional del gráfico;
// quien necesite distinguir años no debe usar esta vista.
func MonthlyRollup(events []entity.StockChangeEvent, now time.Time) []dto.MonthlySalesDTO {
	loc := now.Location()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	buckets := make([]dto.MonthlySalesDTO, rollupMonths)
	index := make(map[time.Month]int, rollupMonths)
	for i := 0; i < rollupMonths; i++ {
		m := firstOfMonth.AddDate(0, i-(rollupMonths-1), 0).Month()
		buckets[i] = dto.MonthlySalesDTO{Month: m, Label: shortMonths[m-1]}
		index[m] = i
	}

	windowStart := now.AddDate(0, -rollupMonths, 0)
	for _, e := range events {
		if !e.IsSale() {
			continue
		}
		if !e.OccurredAt.After(windowStart) || e.OccurredAt.After(now) {
			continue
		}
		if i, ok := index[e.OccurredAt.In(loc).Month()]; ok {
			buckets[i].Quantity += e.Quantity
		}
	}
	return buckets
}

// ── Top de productos ──────────────────────────────────────────────────────────

// TopSellers agrupa las salidas por nombre de producto, ordena por cantidad
// descendente y devuelve como máximo n. Empates: orden de primera aparición.
func TopSellers(events []entity.StockChangeEvent, n int) []dto.TopSellerDTO {
	if n <= 0 {
		return []dto.TopSellerDTO{}
	}
	totals := make(map[string]int)
	var order []string
	for _, e := range events {
		if !e.IsSale() {
			continue
		}
		if _, seen := totals[e.ProductName]; !seen {
			order = append(order, e.ProductName)
		}
		totals[e.ProductName] += e.Quantity
	}

	ranking := make([]dto.TopSellerDTO, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, dto.TopSellerDTO{ProductName: name, QuantitySold: totals[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].QuantitySold > ranking[j].QuantitySold
	})
	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// ── Ventas recientes ──────────────────────────────────────────────────────────

// RecentTransactions devuelve las n salidas más recientes con la fecha formateada en loc.
func RecentTransactions(events []entity.StockChangeEvent, n int, loc *time.Location) []dto.RecentTransactionDTO {
	if n <= 0 {
		return []dto.RecentTransactionDTO{}
	}
	if loc == nil {
		loc = time.UTC
	}
	sales := make([]entity.StockChangeEvent, 0, len(events))
	for _, e := range events {
		if e.IsSale() {
			sales = append(sales, e)
		}
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].OccurredAt.After(sales[j].OccurredAt)
	})
	if len(sales) > n {
		sales = sales[:n]
	}

	out := make([]dto.RecentTransactionDTO, 0, len(sales))
	for _, e := range sales {
		out = append(out, dto.RecentTransactionDTO{
			ProductName:  e.ProductName,
			ProductColor: e.ProductColor,
			ProductSize:  e.ProductSize,
			Date:         e.OccurredAt.In(loc).Format(recentLayout),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", longMonths[t.Month()-1], t.Year())
}
