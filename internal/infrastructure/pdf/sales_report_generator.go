// Package pdf genera el reporte de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período     │  generado por / fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: unidades vendidas en 12 meses / inventario         │
//	│  TABLA: Mes | Unidades                                       │
//	│  TABLA: # | Producto | Unidades   (más vendidos)             │
//	│  TABLA: Producto | Color | Talla | Fecha   (ventas recientes)│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
)

var _ ports.SalesReportRenderer = (*SalesReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SalesReportGenerator implementa ports.SalesReportRenderer.
type SalesReportGenerator struct {
	printer *message.Printer
}

// NewSalesReportGenerator construye el generador con separadores de miles en español.
func NewSalesReportGenerator() *SalesReportGenerator {
	return &SalesReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// RenderSalesReport genera el PDF y devuelve sus bytes.
func (g *SalesReportGenerator) RenderSalesReport(ctx context.Context, data ports.SalesReportData) ([]byte, error) {
	if data.Overview == nil {
		return nil, fmt.Errorf("pdf: overview requerido")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ov := data.Overview

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas "+ov.DateLabel, true).
		WithAuthor(nonEmpty(data.Author, "inventario-insights"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(ov, data.Author))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(ov, data.Stock))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS POR MES (ÚLTIMOS 12 MESES)"))
	m.AddRows(tableHeader([]string{"Mes", "Unidades"}, []int{6, 6}))
	m.AddRows(g.monthlyRows(ov.Monthly)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(tableHeader([]string{"#", "Producto", "Unidades"}, []int{1, 8, 3}))
	m.AddRows(g.topRows(ov.TopSellers)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("VENTAS RECIENTES"))
	m.AddRows(tableHeader([]string{"Producto", "Color", "Talla", "Fecha"}, []int{5, 2, 2, 3}))
	m.AddRows(recentRows(ov.Recent)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(ov))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *SalesReportGenerator) headerRow(ov *dto.SalesOverviewDTO, author string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(ov.DateLabel, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+ov.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(author, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *SalesReportGenerator) summaryRow(ov *dto.SalesOverviewDTO, stock *dto.ProductStatusListDTO) core.Row {
	left := col.New(6).Add(
		text.New("UNIDADES VENDIDAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(g.units(ov.TotalUnits), props.Text{Style: fontstyle.Bold, Size: 14, Top: 6}),
	)
	if stock == nil {
		return row.New(16).Add(left, col.New(6))
	}
	s := stock.Summary
	return row.New(16).Add(
		left,
		col.New(6).Add(
			text.New("INVENTARIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}),
			text.New(fmt.Sprintf("En stock: %s   |   Reabastecer: %s   |   Agotado: %s",
				g.units(s.InStock), g.units(s.Restock), g.units(s.OutOfStock),
			), props.Text{Size: 8, Top: 6, Align: align.Right}),
			text.New("Valor: "+g.money(s.TotalValue), props.Text{Size: 8, Top: 11, Align: align.Right, Color: colorGray}),
		),
	)
}

func (g *SalesReportGenerator) monthlyRows(monthly []dto.MonthlySalesDTO) []core.Row {
	rows := make([]core.Row, 0, len(monthly))
	for i, b := range monthly {
		rows = append(rows, stripe(i, row.New(6).Add(
			cell(b.Label, 6, align.Left),
			cell(g.units(b.Quantity), 6, align.Right),
		)))
	}
	return rows
}

func (g *SalesReportGenerator) topRows(top []dto.TopSellerDTO) []core.Row {
	if len(top) == 0 {
		return []core.Row{emptyRow("Sin ventas registradas")}
	}
	rows := make([]core.Row, 0, len(top))
	for i, t := range top {
		rows = append(rows, stripe(i, row.New(6).Add(
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(t.ProductName, 8, align.Left),
			cell(g.units(t.QuantitySold), 3, align.Right),
		)))
	}
	return rows
}

func recentRows(recent []dto.RecentTransactionDTO) []core.Row {
	if len(recent) == 0 {
		return []core.Row{emptyRow("Sin ventas recientes")}
	}
	rows := make([]core.Row, 0, len(recent))
	for i, r := range recent {
		rows = append(rows, stripe(i, row.New(6).Add(
			cell(r.ProductName, 5, align.Left),
			cell(nonEmpty(r.ProductColor, "—"), 2, align.Left),
			cell(nonEmpty(r.ProductSize, "—"), 2, align.Left),
			cell(r.Date, 3, align.Right),
		)))
	}
	return rows
}

func footerRow(ov *dto.SalesOverviewDTO) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Ventas calculadas a partir del historial de movimientos de stock. "+
				"Los meses se agrupan por nombre dentro de la ventana de 12 meses que termina en "+ov.DateLabel+".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func stripe(i int, r core.Row) core.Row {
	if i%2 == 1 {
		return r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// units formatea un entero con puntos de miles. Ej: 1234567 → "1.234.567".
func (g *SalesReportGenerator) units(n int) string {
	return g.printer.Sprintf("%d", n)
}

// money redondea al peso y antepone "$". Ej: 1234567.6 → "$1.234.568".
func (g *SalesReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%d", d.Round(0).IntPart())
}
