package repository

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// ProductRepository puerto de catálogo (productos y presentaciones).
type ProductRepository interface {
	// GetProduct devuelve el producto o nil si no existe.
	GetProduct(id int64) (*entity.Product, error)
	// GetPresentation devuelve la presentación (con su producto dueño) o nil.
	GetPresentation(id int64) (*entity.Presentation, error)
}
