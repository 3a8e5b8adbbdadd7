package activity

import (
	"fmt"
	"sort"
	"strings"
)

// NoChangesMarker detalle de una actualización sin campos modificados.
const NoChangesMarker = "sin cambios"

const emptyValue = "(vacío)"

// DiffFields compara dos instantáneas clave por clave y devuelve
// "clave: anterior → nuevo" por cada clave distinta, en orden alfabético y
// separadas por ", ". Una clave ausente en un lado se muestra como "(vacío)".
func DiffFields(before, after map[string]any) string {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var parts []string
	for _, k := range sorted {
		oldV, hadOld := before[k]
		newV, hasNew := after[k]
		o, n := formatValue(oldV, hadOld), formatValue(newV, hasNew)
		if o == n {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s → %s", k, o, n))
	}
	if len(parts) == 0 {
		return NoChangesMarker
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any, present bool) string {
	if !present || v == nil {
		return emptyValue
	}
	if s, ok := v.(string); ok && s == "" {
		return emptyValue
	}
	return fmt.Sprint(v)
}
