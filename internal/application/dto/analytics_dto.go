package dto

import "time"

// MonthlySalesDTO unidades vendidas en un mes de la ventana móvil de 12 meses.
type MonthlySalesDTO struct {
	Month    time.Month `json:"month"`    // 1-12
	Label    string     `json:"label"`    // ej: "Ene"
	Quantity int        `json:"quantity"` // suma de salidas del mes
}

// TopSellerDTO producto más vendido (agrupado solo por nombre; color y talla no distinguen).
type TopSellerDTO struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
}

// RecentTransactionDTO venta reciente para el feed del dashboard.
type RecentTransactionDTO struct {
	ProductName  string `json:"product_name"`
	ProductColor string `json:"product_color"`
	ProductSize  string `json:"product_size"`
	Date         string `json:"date"` // dd/mm/aaaa hh:mm en la zona del reporte
}

// SalesOverviewDTO respuesta de GET /api/analytics/sales/overview.
// Las tres vistas salen del mismo log de movimientos leído una sola vez.
type SalesOverviewDTO struct {
	Monthly     []MonthlySalesDTO      `json:"monthly"`
	TopSellers  []TopSellerDTO         `json:"top_sellers"`
	Recent      []RecentTransactionDTO `json:"recent_transactions"`
	TotalUnits  int                    `json:"total_units"` // suma de Monthly
	DateLabel   string                 `json:"date_label"`  // ej: "Octubre 2026"
	GeneratedAt time.Time              `json:"generated_at"`
}

// EmptySalesOverview línea base vacía usada cuando la lectura del log falla.
func EmptySalesOverview(now time.Time) *SalesOverviewDTO {
	return &SalesOverviewDTO{
		Monthly:     []MonthlySalesDTO{},
		TopSellers:  []TopSellerDTO{},
		Recent:      []RecentTransactionDTO{},
		GeneratedAt: now,
	}
}
