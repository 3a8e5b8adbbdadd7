package notification

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// FormatRelative etiqueta de tiempo relativo para la bandeja.
//
//	< 1 min       → "justo ahora" (también fechas futuras)
//	< 1 h         → "hace N min"
//	< 24 h        → "hace N h"
//	< 48 h        → "ayer"
//	< 7 días      → "hace N días"
//	resto         → dd/mm/aaaa en la zona de now
func FormatRelative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "justo ahora"
	case d < time.Hour:
		return fmt.Sprintf("hace %d min", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("hace %d h", int(d/time.Hour))
	case d < 48*time.Hour:
		return "ayer"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("hace %d días", int(d/(24*time.Hour)))
	default:
		return t.In(now.Location()).Format("02/01/2006")
	}
}

// ToDTO convierte una notificación a su DTO con la etiqueta relativa a now.
func ToDTO(n entity.Notification, now time.Time) dto.NotificationDTO {
	return dto.NotificationDTO{
		ID:                n.ID,
		Title:             n.Title,
		Message:           n.Message,
		Type:              string(n.Type),
		Severity:          string(n.Severity),
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
		TimeAgo:           FormatRelative(n.CreatedAt, now),
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
	}
}

// ToDTOs convierte una lista; nunca devuelve nil.
func ToDTOs(items []entity.Notification, now time.Time) []dto.NotificationDTO {
	out := make([]dto.NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, ToDTO(n, now))
	}
	return out
}
