package repository

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// UserRepository puerto de usuarios operadores.
type UserRepository interface {
	// GetByID devuelve el usuario o nil si no existe.
	GetByID(id int64) (*entity.User, error)
	// ListIDsByRoles devuelve los ids de usuarios con alguno de los roles.
	ListIDsByRoles(roles []string) ([]int64, error)
}

// ClientRepository puerto de clientes.
type ClientRepository interface {
	// Create inserta el cliente y asigna su ID.
	Create(c *entity.Client) error
}
