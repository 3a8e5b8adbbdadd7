package ports

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// AuditLog destino best-effort del log de auditoría.
type AuditLog interface {
	Append(ctx context.Context, entry *entity.ActivityLogEntry) error
}

// ActorProvider devuelve el usuario actual para atribución.
// No puede fallar: sin usuario devuelve entity.UnknownActor.
type ActorProvider interface {
	CurrentActor(ctx context.Context) entity.Actor
}

// Alerter canal no bloqueante para avisar al usuario de un fallo de lectura.
type Alerter interface {
	Alert(ctx context.Context, err error)
}

// AlertDeduper evita repetir alertas de stock para el mismo (producto, estado).
type AlertDeduper interface {
	// Acquire devuelve true si la clave no estaba tomada (la alerta debe emitirse).
	Acquire(ctx context.Context, key string) (bool, error)
	// Release libera las claves (el producto volvió a estar en stock).
	Release(ctx context.Context, keys ...string) error
}

// EventPublisher publica eventos de dominio hacia el correlador (en proceso o vía bus).
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.DomainEvent) error
}

// SalesReportData datos consolidados del reporte de ventas en PDF.
// Stock es opcional: sin productos el reporte omite la sección de inventario.
type SalesReportData struct {
	Overview *dto.SalesOverviewDTO
	Stock    *dto.ProductStatusListDTO
	Author   string
}

// SalesReportRenderer genera el documento del reporte de ventas.
type SalesReportRenderer interface {
	RenderSalesReport(ctx context.Context, data SalesReportData) ([]byte, error)
}
