package entity

import "time"

// StockDirection sentido de un movimiento de stock.
type StockDirection string

const (
	StockIn  StockDirection = "stock_in"  // entrada
	StockOut StockDirection = "stock_out" // salida (venta)
)

// StockChangeEvent registro inmutable de un movimiento de inventario con una
// instantánea descriptiva del producto. El log completo es la única entrada de
// la analítica de ventas; el núcleo solo lo lee.
type StockChangeEvent struct {
	ID           string         `json:"id"`
	ProductID    string         `json:"product_id"`
	ProductName  string         `json:"product_name"`
	ProductColor string         `json:"product_color"`
	ProductSize  string         `json:"product_size"`
	Quantity     int            `json:"quantity"` // siempre positiva; el sentido lo da Direction
	Direction    StockDirection `json:"direction"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

// IsSale indica si el movimiento es una salida.
func (e StockChangeEvent) IsSale() bool {
	return e.Direction == StockOut
}
