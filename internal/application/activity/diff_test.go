package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-insights/internal/application/activity"
)

func TestDiffFields(t *testing.T) {
	cases := []struct {
		name   string
		before map[string]any
		after  map[string]any
		want   string
	}{
		{
			name:   "un campo cambiado",
			before: map[string]any{"name": "Camisa", "price": 10},
			after:  map[string]any{"name": "Camisa", "price": 12},
			want:   "price: 10 → 12",
		},
		{
			name:   "varios campos en orden alfabético",
			before: map[string]any{"size": "M", "color": "Rojo", "name": "Camisa"},
			after:  map[string]any{"size": "L", "color": "Azul", "name": "Camisa"},
			want:   "color: Rojo → Azul, size: M → L",
		},
		{
			name:   "sin cambios",
			before: map[string]any{"name": "Camisa"},
			after:  map[string]any{"name": "Camisa"},
			want:   activity.NoChangesMarker,
		},
		{
			name:   "ambos vacíos",
			before: nil,
			after:  nil,
			want:   "sin cambios",
		},
		{
			name:   "clave agregada y clave quitada",
			before: map[string]any{"color": "Rojo"},
			after:  map[string]any{"size": "XL"},
			want:   "color: Rojo → (vacío), size: (vacío) → XL",
		},
		{
			name:   "número json y entero equivalentes",
			before: map[string]any{"threshold": float64(5)},
			after:  map[string]any{"threshold": 5},
			want:   "sin cambios",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, activity.DiffFields(tc.before, tc.after))
		})
	}
}
