package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/ports"
)

// Ensure TxRunner implements ports.TxRunner.
var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con todos los repos atados a la
// tx y hace Commit o Rollback. Todo efecto de fn es todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.Repos{
		Prices:        NewPriceRepository(tx),
		Lots:          NewStockLotRepository(tx),
		Deliveries:    NewStockDeliveryRepository(tx),
		Thresholds:    NewThresholdRepository(tx),
		Sales:         NewSaleRepository(tx),
		Payments:      NewPaymentRepository(tx),
		Users:         NewUserRepository(tx),
		Clients:       NewClientRepository(tx),
		Notifications: NewNotificationRepository(tx),
		Movements:     NewMovementRepository(tx),
		Cash:          NewCashRepository(tx),
		Goals:         NewGoalRepository(tx),
		Products:      NewProductRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
