package entity

import "time"

// EventKind tipo de evento de dominio que el correlador traduce a auditoría y notificaciones.
type EventKind string

const (
	EventProductCreated    EventKind = "product_created"
	EventProductUpdated    EventKind = "product_updated"
	EventProductDeleted    EventKind = "product_deleted"
	EventSaleRecorded      EventKind = "sale_recorded"
	EventStockAdded        EventKind = "stock_added"
	EventInventoryAdjusted EventKind = "inventory_adjusted"

	EventUserCreated  EventKind = "user_created"
	EventUserUpdated  EventKind = "user_updated"
	EventUserDeleted  EventKind = "user_deleted"
	EventUnitCreated  EventKind = "unit_created"
	EventUnitUpdated  EventKind = "unit_updated"
	EventUnitDeleted  EventKind = "unit_deleted"
	EventColorCreated EventKind = "color_created"
	EventColorUpdated EventKind = "color_updated"
	EventColorDeleted EventKind = "color_deleted"
	EventSizeCreated  EventKind = "size_created"
	EventSizeUpdated  EventKind = "size_updated"
	EventSizeDeleted  EventKind = "size_deleted"

	EventCSVImported     EventKind = "csv_imported"
	EventCSVExported     EventKind = "csv_exported"
	EventReportGenerated EventKind = "report_generated"
)

// DomainEvent hecho de negocio ya realizado por el colaborador externo (CRUD de productos,
// ventas, etc.). El correlador lo consume; no lo valida contra reglas de negocio.
type DomainEvent struct {
	Kind       EventKind `json:"kind"`
	EntityType string    `json:"entity_type,omitempty"` // product, user, unit, color, size, report, csv
	EntityID   string    `json:"entity_id,omitempty"`
	Name       string    `json:"name,omitempty"` // nombre del producto o entidad

	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity,omitempty"` // movimientos: cantidad (ajustes pueden ser negativos)

	// Estado resultante del producto tras el movimiento (opcional, para alertas de stock).
	ResultingQuantity *int `json:"resulting_quantity,omitempty"`
	ThresholdQuantity *int `json:"threshold_quantity,omitempty"`

	// Instantáneas para updates (diff campo a campo).
	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`

	Note       string    `json:"note,omitempty"` // texto libre (motivo de ajuste, nombre de archivo CSV...)
	Actor      *Actor    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Known indica si el tipo de evento es reconocido.
func (k EventKind) Known() bool {
	switch k {
	case EventProductCreated, EventProductUpdated, EventProductDeleted,
		EventSaleRecorded, EventStockAdded, EventInventoryAdjusted,
		EventUserCreated, EventUserUpdated, EventUserDeleted,
		EventUnitCreated, EventUnitUpdated, EventUnitDeleted,
		EventColorCreated, EventColorUpdated, EventColorDeleted,
		EventSizeCreated, EventSizeUpdated, EventSizeDeleted,
		EventCSVImported, EventCSVExported, EventReportGenerated:
		return true
	}
	return false
}

// IsStockMovement indica si el evento mueve stock.
func (k EventKind) IsStockMovement() bool {
	return k == EventSaleRecorded || k == EventStockAdded || k == EventInventoryAdjusted
}
