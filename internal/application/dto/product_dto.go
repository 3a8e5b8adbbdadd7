package dto

import "github.com/shopspring/decimal"

// ProductStatusDTO producto con su estado de stock derivado.
type ProductStatusDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Color             string          `json:"color"`
	Size              string          `json:"size"`
	Unit              string          `json:"unit"`
	ActualQuantity    int             `json:"actual_quantity"`
	ThresholdQuantity int             `json:"threshold_quantity"`
	Status            string          `json:"status"`       // in_stock | restock | out_of_stock
	StatusLabel       string          `json:"status_label"` // "En stock", "Reabastecer", "Agotado"
	StockValue        decimal.Decimal `json:"stock_value"`  // precio * cantidad
}

// StockSummaryDTO totales por estado.
type StockSummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	InStock       int             `json:"in_stock"`
	Restock       int             `json:"restock"`
	OutOfStock    int             `json:"out_of_stock"`
	TotalUnits    int             `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ProductStatusListDTO respuesta de GET /api/products/status.
type ProductStatusListDTO struct {
	Items   []ProductStatusDTO `json:"items"`
	Summary StockSummaryDTO    `json:"summary"`
}

// Add acumula un producto en el resumen.
func (s *StockSummaryDTO) Add(p ProductStatusDTO) {
	s.TotalProducts++
	s.TotalUnits += p.ActualQuantity
	s.TotalValue = s.TotalValue.Add(p.StockValue)
	switch p.Status {
	case "in_stock":
		s.InStock++
	case "restock":
		s.Restock++
	case "out_of_stock":
		s.OutOfStock++
	}
}
