package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL
// (usable con pool o tx). Un lote referencia producto o presentación;
// los filtros por entidad discriminan con presentation_id IS NULL.
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

// itemFilter arma la condición por entidad: presentación concreta o
// producto simple (sin presentación).
func itemFilter(item entity.ItemRef, argOffset int) (string, []any) {
	if item.IsPresentation() {
		return fmt.Sprintf("presentation_id = $%d", argOffset), []any{item.PresentationID}
	}
	return fmt.Sprintf("product_id = $%d AND presentation_id IS NULL", argOffset), []any{item.ProductID}
}

// SumRemaining suma el restante de los lotes de la entidad en la sucursal.
func (r *StockLotRepo) SumRemaining(item entity.ItemRef, branchID int64) (int64, error) {
	cond, args := itemFilter(item, 2)
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(remaining_qty), 0) FROM stock_lots
		WHERE branch_id = $1 AND %s`, cond)
	var total int64
	err := r.q.QueryRow(context.Background(), query, append([]any{branchID}, args...)...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum remaining stock: %w", err)
	}
	return total, nil
}

// ListAvailableFIFO lista lotes con restante > 0 en orden FIFO estricto:
// fecha de ingreso ascendente, empates por id ascendente.
func (r *StockLotRepo) ListAvailableFIFO(item entity.ItemRef, branchID int64) ([]*entity.StockLot, error) {
	cond, args := itemFilter(item, 2)
	query := fmt.Sprintf(`
		SELECT id, product_id, presentation_id, branch_id, initial_qty, remaining_qty, unit_cost, received_at, expires_at, delivery_id
		FROM stock_lots
		WHERE branch_id = $1 AND %s AND remaining_qty > 0
		ORDER BY received_at ASC, id ASC`, cond)
	rows, err := r.q.Query(context.Background(), query, append([]any{branchID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list fifo lots: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLot
	for rows.Next() {
		var l entity.StockLot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.PresentationID, &l.BranchID, &l.InitialQty,
			&l.RemainingQty, &l.UnitCost, &l.ReceivedAt, &l.ExpiresAt, &l.DeliveryID,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Decrement resta qty del lote solo si el restante alcanza; el WHERE
// condicional garantiza que ningún lote quede negativo bajo concurrencia.
func (r *StockLotRepo) Decrement(lotID, qty int64) (bool, error) {
	query := `
		UPDATE stock_lots SET remaining_qty = remaining_qty - $2
		WHERE id = $1 AND remaining_qty >= $2`
	tag, err := r.q.Exec(context.Background(), query, lotID, qty)
	if err != nil {
		return false, fmt.Errorf("decrement lot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Create inserta un lote nuevo y asigna su ID.
func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (product_id, presentation_id, branch_id, initial_qty, remaining_qty, unit_cost, received_at, expires_at, delivery_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		lot.ProductID, lot.PresentationID, lot.BranchID, lot.InitialQty,
		lot.RemainingQty, lot.UnitCost, lot.ReceivedAt, lot.ExpiresAt, lot.DeliveryID,
	).Scan(&lot.ID)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID devuelve el lote o nil si no existe.
func (r *StockLotRepo) GetByID(id int64) (*entity.StockLot, error) {
	query := `
		SELECT id, product_id, presentation_id, branch_id, initial_qty, remaining_qty, unit_cost, received_at, expires_at, delivery_id
		FROM stock_lots WHERE id = $1`
	var l entity.StockLot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ProductID, &l.PresentationID, &l.BranchID, &l.InitialQty,
		&l.RemainingQty, &l.UnitCost, &l.ReceivedAt, &l.ExpiresAt, &l.DeliveryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// Delete elimina un lote (corrección explícita; la auditoría la registra
// el caso de uso).
func (r *StockLotRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}

var _ repository.StockDeliveryRepository = (*StockDeliveryRepo)(nil)

// StockDeliveryRepo cabeceras de entrega de stock.
type StockDeliveryRepo struct {
	q Querier
}

// NewStockDeliveryRepository construye el adaptador de entregas. Pasar pool o tx (Querier).
func NewStockDeliveryRepository(q Querier) *StockDeliveryRepo {
	return &StockDeliveryRepo{q: q}
}

// Create inserta la cabecera de entrega y asigna su ID.
func (r *StockDeliveryRepo) Create(d *entity.StockDelivery) error {
	query := `
		INSERT INTO stock_deliveries (supplier_id, branch_id, received_by_id, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.SupplierID, d.BranchID, d.ReceivedByID, d.TotalCost, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de stock mínimo (solo lectura).
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador de umbrales. Pasar pool o tx (Querier).
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// GetByItem devuelve el umbral configurado para la entidad o nil.
func (r *ThresholdRepo) GetByItem(item entity.ItemRef) (*entity.StockThreshold, error) {
	cond, args := itemFilter(item, 1)
	query := fmt.Sprintf(`
		SELECT id, product_id, presentation_id, min_qty
		FROM stock_thresholds WHERE %s`, cond)
	var t entity.StockThreshold
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.ProductID, &t.PresentationID, &t.MinQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get threshold: %w", err)
	}
	return &t, nil
}
