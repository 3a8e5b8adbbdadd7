package dto

import "time"

// ActivityLogDTO entrada del log de auditoría.
type ActivityLogDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// EventAcceptedDTO respuesta de POST /api/events.
type EventAcceptedDTO struct {
	Kind     string `json:"kind"`
	Accepted bool   `json:"accepted"`
	Via      string `json:"via"` // "inprocess" | "kafka"
}
