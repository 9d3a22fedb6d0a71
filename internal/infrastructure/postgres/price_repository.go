package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación de PriceRepository sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de precios. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// GetByID devuelve el precio o nil si no existe.
func (r *PriceRepo) GetByID(id int64) (*entity.Price, error) {
	query := `
		SELECT id, product_id, presentation_id, role, rank, amount, state, kind, used, valid_from, valid_until, created_at
		FROM prices WHERE id = $1`
	var p entity.Price
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.PresentationID, &p.Role, &p.Rank, &p.Amount,
		&p.State, &p.Kind, &p.Used, &p.ValidFrom, &p.ValidUntil, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return &p, nil
}

// ListTemporaryApproved filtra los ids que son REQUEST_GENERATED y APPROVED.
func (r *PriceRepo) ListTemporaryApproved(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id FROM prices
		WHERE id = ANY($1) AND kind = $2 AND state = $3
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ids,
		entity.PriceKindRequestGenerated, entity.PriceStateApproved)
	if err != nil {
		return nil, fmt.Errorf("list temporary prices: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan temporary price: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ClaimUnused marca used=true solo donde used=false, en un solo UPDATE
// condicional. Devuelve las filas afectadas; el caso de uso compara
// contra lo esperado para detectar el conflicto de reclamo.
func (r *PriceRepo) ClaimUnused(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE prices
		SET used = true
		WHERE id = ANY($1)
		  AND used = false
		  AND kind = $2
		  AND state = $3`
	tag, err := r.q.Exec(context.Background(), query, ids, entity.PriceKindRequestGenerated, entity.PriceStateApproved)
	if err != nil {
		return 0, fmt.Errorf("claim prices: %w", err)
	}
	return tag.RowsAffected(), nil
}
