package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus clasificación derivada del stock de un producto frente a su punto de reorden.
// Se recalcula en cada lectura; nunca se persiste.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusRestock    StockStatus = "restock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// Label etiqueta legible para la UI.
func (s StockStatus) Label() string {
	switch s {
	case StatusInStock:
		return "En stock"
	case StatusRestock:
		return "Reabastecer"
	case StatusOutOfStock:
		return "Agotado"
	default:
		return string(s)
	}
}

// Valid indica si s es uno de los estados conocidos.
func (s StockStatus) Valid() bool {
	return s == StatusInStock || s == StatusRestock || s == StatusOutOfStock
}

// Product representa una variante de producto del inventario.
// El núcleo nunca lo modifica; solo deriva su StockStatus.
// Invariante: ActualQuantity >= 0.
type Product struct {
	ID                string
	Name              string
	Color             string
	Size              string
	Unit              string
	ActualQuantity    int // stock actual
	ThresholdQuantity int // punto de reorden
	Price             decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockValue valor del stock actual (precio * cantidad).
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.ActualQuantity)))
}
