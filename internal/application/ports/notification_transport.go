package ports

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// NotificationTransport contrato remoto de la bandeja de notificaciones.
// Todas las operaciones pueden fallar con domain.TransportError; List puede
// fallar además con domain.MalformedResponseError si el payload no es una lista.
// Lo implementan el cliente HTTP (cmd/inbox) y usecase.NotificationUseCase (en proceso).
type NotificationTransport interface {
	List(ctx context.Context) ([]entity.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
	MarkAllRead(ctx context.Context) error
	Create(ctx context.Context, req entity.NotificationRequest) (*entity.Notification, error)
	Delete(ctx context.Context, id string) error
}

// NotificationCreator subconjunto que necesita el correlador.
type NotificationCreator interface {
	Create(ctx context.Context, req entity.NotificationRequest) (*entity.Notification, error)
}
