package entity

import "time"

// Roles reconocidos por el middleware de autorización.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleService = "service" // integraciones que publican eventos de dominio
)

// User cuenta que puede autenticarse contra la API. El alta de usuarios vive en
// el sistema de inventario; aquí solo se verifica la contraseña.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
}
