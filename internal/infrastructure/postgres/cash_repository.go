package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo sesiones de caja. El motor solo lee la sesión abierta y
// enlaza ventas; apertura y cierre viven en otro módulo.
type CashRepo struct {
	q Querier
}

// NewCashRepository construye el adaptador de caja. Pasar pool o tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

// FindOpenSession devuelve la sesión abierta del usuario en la sucursal o nil.
func (r *CashRepo) FindOpenSession(branchID, userID int64) (*entity.CashSession, error) {
	query := `
		SELECT id, branch_id, user_id, opening_cash, status, opened_at, closed_at
		FROM cash_sessions
		WHERE branch_id = $1 AND user_id = $2 AND status = $3
		ORDER BY opened_at DESC
		LIMIT 1`
	var s entity.CashSession
	err := r.q.QueryRow(context.Background(), query, branchID, userID, entity.CashSessionOpen).Scan(
		&s.ID, &s.BranchID, &s.UserID, &s.OpeningCash, &s.Status, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open cash session: %w", err)
	}
	return &s, nil
}

// LinkSale asocia la venta a la sesión de caja.
func (r *CashRepo) LinkSale(sessionID, saleID int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET cash_session_id = $1 WHERE id = $2`, sessionID, saleID)
	if err != nil {
		return fmt.Errorf("link sale to cash session: %w", err)
	}
	return nil
}

var _ repository.GoalRepository = (*GoalRepo)(nil)

// GoalRepo acumulado de metas por usuario y canal.
type GoalRepo struct {
	q Querier
}

// NewGoalRepository construye el adaptador de metas. Pasar pool o tx (Querier).
func NewGoalRepository(q Querier) *GoalRepo {
	return &GoalRepo{q: q}
}

// Increment suma amount al acumulado del usuario en el canal (upsert).
func (r *GoalRepo) Increment(userID int64, amount decimal.Decimal, channel string) error {
	query := `
		INSERT INTO user_goals (user_id, channel, total, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, channel)
		DO UPDATE SET total = user_goals.total + EXCLUDED.total, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, userID, channel, amount); err != nil {
		return fmt.Errorf("increment goal: %w", err)
	}
	return nil
}
