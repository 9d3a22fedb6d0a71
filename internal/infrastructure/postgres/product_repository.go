package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo: productos y presentaciones (solo lectura para el
// motor de ventas).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetProduct devuelve el producto o nil si no existe.
func (r *ProductRepo) GetProduct(id int64) (*entity.Product, error) {
	query := `
		SELECT id, name, description, code, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Code, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetPresentation devuelve la presentación (con su producto dueño) o nil.
func (r *ProductRepo) GetPresentation(id int64) (*entity.Presentation, error) {
	query := `
		SELECT id, product_id, name, barcode, factor, created_at
		FROM presentations WHERE id = $1`
	var p entity.Presentation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Barcode, &p.Factor, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return &p, nil
}
