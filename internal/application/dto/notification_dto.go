package dto

import "time"

// NotificationDTO notificación con etiqueta de tiempo relativo.
type NotificationDTO struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Type              string    `json:"type"`
	Severity          string    `json:"severity"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
	TimeAgo           string    `json:"time_ago"` // ej: "hace 5 min"
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   string    `json:"related_entity_id,omitempty"`
}

// CreateNotificationRequest body de POST /api/notifications.
type CreateNotificationRequest struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	Type              string `json:"type"`
	Severity          string `json:"severity"`
	RelatedEntityType string `json:"related_entity_type,omitempty"`
	RelatedEntityID   string `json:"related_entity_id,omitempty"`
}

// UnreadCountDTO respuesta de GET /api/notifications/unread-count.
type UnreadCountDTO struct {
	Count int `json:"count"`
}
