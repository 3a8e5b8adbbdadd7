package entity

import "time"

// NotificationType tipo de notificación.
type NotificationType string

const (
	NotificationLowStock            NotificationType = "low_stock"
	NotificationOutOfStock          NotificationType = "out_of_stock"
	NotificationStockAddition       NotificationType = "stock_addition"
	NotificationInventoryAdjustment NotificationType = "inventory_adjustment"
	NotificationSaleRecorded        NotificationType = "sale_recorded"
	NotificationGeneral             NotificationType = "general"
)

// Valid indica si t es un tipo conocido.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLowStock, NotificationOutOfStock, NotificationStockAddition,
		NotificationInventoryAdjustment, NotificationSaleRecorded, NotificationGeneral:
		return true
	}
	return false
}

// Severity severidad de una notificación.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid indica si s es una severidad conocida.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh || s == SeverityCritical
}

// Notification registro de la bandeja. Solo cambia por la transición
// no leída → leída; se elimina con un delete explícito.
type Notification struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	Severity          Severity         `json:"severity"`
	IsRead            bool             `json:"is_read"`
	CreatedAt         time.Time        `json:"created_at"`
	RelatedEntityType string           `json:"related_entity_type,omitempty"`
	RelatedEntityID   string           `json:"related_entity_id,omitempty"`
}

// NotificationRequest datos para crear una notificación.
type NotificationRequest struct {
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	Severity          Severity         `json:"severity"`
	RelatedEntityType string           `json:"related_entity_type,omitempty"`
	RelatedEntityID   string           `json:"related_entity_id,omitempty"`
}
