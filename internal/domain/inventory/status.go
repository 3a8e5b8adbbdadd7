package inventory

import "github.com/jhoicas/inventario-insights/internal/domain/entity"

// Classify deriva el estado de stock (servicio de dominio puro).
//
//	actual == 0                → OutOfStock
//	0 < actual <= threshold    → Restock
//	actual > threshold         → InStock
//
// Precondición: actual >= 0 y threshold >= 0. Valores negativos son un error del
// llamador y no se tratan aquí.
func Classify(actualQuantity, thresholdQuantity int) entity.StockStatus {
	switch {
	case actualQuantity == 0:
		return entity.StatusOutOfStock
	case actualQuantity <= thresholdQuantity:
		return entity.StatusRestock
	default:
		return entity.StatusInStock
	}
}

// ClassifyProduct atajo sobre un Product.
func ClassifyProduct(p entity.Product) entity.StockStatus {
	return Classify(p.ActualQuantity, p.ThresholdQuantity)
}
