package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/inventory"
)

func TestClassify_CasosDeReferencia(t *testing.T) {
	cases := []struct {
		name      string
		actual    int
		threshold int
		want      entity.StockStatus
	}{
		{"agotado", 0, 5, entity.StatusOutOfStock},
		{"reabastecer", 3, 5, entity.StatusRestock},
		{"en stock", 10, 5, entity.StatusInStock},
		{"igual al umbral es reabastecer", 5, 5, entity.StatusRestock},
		{"umbral cero con stock", 1, 0, entity.StatusInStock},
		{"umbral cero sin stock", 0, 0, entity.StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Classify(tc.actual, tc.threshold))
		})
	}
}

// Propiedades: classify(0, t) = OutOfStock; Restock sii 0 < q <= t; InStock sii q > t.
func TestClassify_Propiedades(t *testing.T) {
	for threshold := 0; threshold <= 20; threshold++ {
		assert.Equal(t, entity.StatusOutOfStock, inventory.Classify(0, threshold))
		for q := 1; q <= 40; q++ {
			got := inventory.Classify(q, threshold)
			assert.Equal(t, q <= threshold, got == entity.StatusRestock, "q=%d t=%d", q, threshold)
			assert.Equal(t, q > threshold, got == entity.StatusInStock, "q=%d t=%d", q, threshold)
		}
	}
}

func TestClassifyProduct(t *testing.T) {
	p := entity.Product{ActualQuantity: 3, ThresholdQuantity: 5}
	assert.Equal(t, entity.StatusRestock, inventory.ClassifyProduct(p))
}
