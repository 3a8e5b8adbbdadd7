package entity

import "time"

// Actor usuario al que se atribuye una acción.
type Actor struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// UnknownActor centinela cuando no hay usuario identificado.
var UnknownActor = Actor{UserID: "", Username: "usuario desconocido"}

// IsUnknown indica si a es el centinela.
func (a Actor) IsUnknown() bool {
	return a.UserID == "" && (a.Username == "" || a.Username == UnknownActor.Username)
}

// ActivityLogEntry registro de auditoría append-only.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
