package repository

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ProductRepository puerto de lectura de productos. El CRUD vive en el colaborador externo;
// aquí solo se consulta para derivar estados de stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListAll devuelve todos los productos ordenados por nombre.
	ListAll(ctx context.Context) ([]entity.Product, error)
}
