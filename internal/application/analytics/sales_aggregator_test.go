package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-insights/internal/application/analytics"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func sale(name string, qty int, at time.Time) entity.StockChangeEvent {
	return entity.StockChangeEvent{ProductName: name, Quantity: qty, Direction: entity.StockOut, OccurredAt: at}
}

func restock(name string, qty int, at time.Time) entity.StockChangeEvent {
	return entity.StockChangeEvent{ProductName: name, Quantity: qty, Direction: entity.StockIn, OccurredAt: at}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioReferencia_TopYRollup(t *testing.T) {
	now := date(2026, time.March, 15)
	events := []entity.StockChangeEvent{
		sale("Widget", 5, date(2026, time.January, 10)),
		sale("Widget", 3, date(2026, time.February, 5)),
		sale("Gadget", 10, date(2026, time.January, 20)),
	}

	top := analytics.TopSellers(events, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Gadget", top[0].ProductName)
	assert.Equal(t, 10, top[0].QuantitySold)
	assert.Equal(t, "Widget", top[1].ProductName)
	assert.Equal(t, 8, top[1].QuantitySold)

	monthly := analytics.MonthlyRollup(events, now)
	byMonth := map[time.Month]int{}
	for _, b := range monthly {
		byMonth[b.Month] = b.Quantity
	}
	assert.Equal(t, 15, byMonth[time.January])
	assert.Equal(t, 3, byMonth[time.February])
	assert.Equal(t, 0, byMonth[time.March])
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyRollup
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyRollup_DoceBaldesDelMasAntiguoAlActual(t *testing.T) {
	now := date(2026, time.October, 16)
	monthly := analytics.MonthlyRollup(nil, now)

	require.Len(t, monthly, 12)
	assert.Equal(t, time.November, monthly[0].Month)
	assert.Equal(t, "Nov", monthly[0].Label)
	assert.Equal(t, time.October, monthly[11].Month)
	assert.Equal(t, "Oct", monthly[11].Label)
	for _, b := range monthly {
		assert.Zero(t, b.Quantity)
	}
}

func TestMonthlyRollup_SumaIgualAVentasEnLaVentana(t *testing.T) {
	now := date(2026, time.October, 16)
	events := []entity.StockChangeEvent{
		sale("A", 2, date(2026, time.October, 1)),
		sale("B", 7, date(2026, time.May, 3)),
		sale("C", 4, date(2025, time.December, 31)),
		restock("A", 100, date(2026, time.June, 1)),   // entradas no cuentan
		sale("D", 50, date(2025, time.September, 30)), // fuera de la ventana
		sale("E", 60, date(2026, time.November, 2)),   // futuro
		sale("F", 70, date(2024, time.March, 1)),      // años atrás, mismo nombre de mes
	}

	monthly := analytics.MonthlyRollup(events, now)
	total := 0
	for _, b := range monthly {
		total += b.Quantity
	}
	assert.Equal(t, 2+7+4, total)
}

// El balde se elige por nombre de mes: la cola de octubre del año anterior que
// todavía está en la ventana se suma al octubre en curso.
func TestMonthlyRollup_ConfundeMismoMesDeAniosDistintosDentroDeLaVentana(t *testing.T) {
	now := date(2026, time.October, 16)
	events := []entity.StockChangeEvent{
		sale("A", 4, date(2025, time.October, 20)), // dentro de (16-oct-2025, 16-oct-2026]
		sale("A", 1, date(2026, time.October, 2)),
		sale("A", 9, date(2025, time.October, 10)), // antes del inicio de la ventana
	}

	monthly := analytics.MonthlyRollup(events, now)
	assert.Equal(t, time.October, monthly[11].Month)
	assert.Equal(t, 5, monthly[11].Quantity)
}

func TestMonthlyRollup_UsaLaZonaDeNow(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, bogota)
	// 1 de marzo 02:00 UTC = 28 de febrero 21:00 en Bogotá
	events := []entity.StockChangeEvent{sale("A", 3, time.Date(2026, time.March, 1, 2, 0, 0, 0, time.UTC))}

	monthly := analytics.MonthlyRollup(events, now)
	assert.Equal(t, time.February, monthly[10].Month)
	assert.Equal(t, 3, monthly[10].Quantity)
	assert.Zero(t, monthly[11].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// TopSellers
// ──────────────────────────────────────────────────────────────────────────────

func TestTopSellers_TruncaACincoYOrdenaNoCreciente(t *testing.T) {
	var events []entity.StockChangeEvent
	for i := 1; i <= 8; i++ {
		events = append(events, sale(fmt.Sprintf("P%d", i), i, date(2026, time.January, i)))
	}

	top := analytics.TopSellers(events, 5)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].QuantitySold, top[i].QuantitySold)
	}
	assert.Equal(t, "P8", top[0].ProductName)
}

func TestTopSellers_EmpatesConservanOrdenDeAparicion(t *testing.T) {
	events := []entity.StockChangeEvent{
		sale("Zeta", 5, date(2026, time.January, 1)),
		sale("Alfa", 5, date(2026, time.January, 2)),
		sale("Beta", 6, date(2026, time.January, 3)),
	}

	top := analytics.TopSellers(events, 5)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Beta", "Zeta", "Alfa"},
		[]string{top[0].ProductName, top[1].ProductName, top[2].ProductName})
}

func TestTopSellers_AgrupaSoloPorNombre(t *testing.T) {
	events := []entity.StockChangeEvent{
		{ProductName: "Camisa", ProductColor: "Rojo", ProductSize: "M", Quantity: 2, Direction: entity.StockOut},
		{ProductName: "Camisa", ProductColor: "Azul", ProductSize: "L", Quantity: 3, Direction: entity.StockOut},
		{ProductName: "Camisa", Quantity: 50, Direction: entity.StockIn},
	}

	top := analytics.TopSellers(events, 5)
	require.Len(t, top, 1)
	assert.Equal(t, 5, top[0].QuantitySold)
}

func TestTopSellers_SinVentasDevuelveVacioNoNil(t *testing.T) {
	top := analytics.TopSellers([]entity.StockChangeEvent{restock("A", 1, time.Now())}, 5)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecentTransactions
// ──────────────────────────────────────────────────────────────────────────────

func TestRecentTransactions_CincoMasRecientesFormateadas(t *testing.T) {
	base := time.Date(2026, time.July, 1, 15, 30, 0, 0, time.UTC)
	var events []entity.StockChangeEvent
	for i := 0; i < 7; i++ {
		e := sale(fmt.Sprintf("P%d", i), 1, base.Add(time.Duration(i)*time.Hour))
		e.ProductColor = "Negro"
		e.ProductSize = "S"
		events = append(events, e)
	}
	events = append(events, restock("Nuevo", 3, base.Add(48*time.Hour)))

	recent := analytics.RecentTransactions(events, 5, time.UTC)
	require.Len(t, recent, 5)
	assert.Equal(t, "P6", recent[0].ProductName)
	assert.Equal(t, "P2", recent[4].ProductName)
	assert.Equal(t, "Negro", recent[0].ProductColor)
	assert.Equal(t, "S", recent[0].ProductSize)
	assert.Equal(t, "01/07/2026 21:30", recent[0].Date)
}

func TestRecentTransactions_FormateaEnLaZonaIndicada(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	events := []entity.StockChangeEvent{sale("A", 1, time.Date(2026, time.July, 1, 3, 0, 0, 0, time.UTC))}

	recent := analytics.RecentTransactions(events, 5, bogota)
	require.Len(t, recent, 1)
	assert.Equal(t, "30/06/2026 22:00", recent[0].Date)
}
