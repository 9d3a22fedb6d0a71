package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `
		SELECT id, name, email, role, branch_id, created_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.BranchID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListIDsByRoles devuelve los ids de usuarios con alguno de los roles dados.
func (r *UserRepo) ListIDsByRoles(roles []string) ([]int64, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	query := `SELECT id FROM users WHERE role = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, roles)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes de la tienda.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create inserta el cliente y asigna su ID.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (name, surname, dpi, nit, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.Name, c.Surname, c.DPI, c.NIT, c.Phone, c.Address, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}
