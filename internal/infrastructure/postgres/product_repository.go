package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de lectura de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, color, size, unit, actual_quantity, threshold_quantity, price, created_at, updated_at`

// GetByID obtiene un producto por ID; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get_product", fmt.Errorf("get product: %w", err))
	}
	return p, nil
}

// ListAll lista todos los productos ordenados por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, color, size`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrap("list_products", fmt.Errorf("list products: %w", err))
	}
	defer rows.Close()

	list := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("list_products", fmt.Errorf("scan product: %w", err))
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list_products", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Color, &p.Size, &p.Unit,
		&p.ActualQuantity, &p.ThresholdQuantity, &p.Price, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
