package repository

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// UserRepository puerto de lectura de cuentas para el login.
type UserRepository interface {
	// FindByUsername devuelve nil, nil si no existe.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
