package repository

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// NotificationRepository puerto de persistencia de la bandeja de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	// List devuelve las notificaciones más recientes primero, como máximo limit.
	List(ctx context.Context, limit int) ([]entity.Notification, error)
	// CountUnread cuenta las no leídas entre las limit más recientes (limit <= 0: todas).
	CountUnread(ctx context.Context, limit int) (int, error)
	// MarkRead marca como leída y devuelve el registro actualizado; nil si no existe.
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
	// MarkAllRead marca todas y devuelve cuántas cambiaron.
	MarkAllRead(ctx context.Context) (int64, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
