package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/criteria"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas. Los IDs quedan asignados en la
// entidad; un fallo en cualquier línea aborta la transacción completa.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (branch_id, user_id, client_id, voucher_type, payment_reference, total, imei, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.BranchID, sale.UserID, sale.ClientID, sale.VoucherType,
		sale.PaymentReference, sale.Total, sale.IMEI, sale.Notes, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	lineQuery := `
		INSERT INTO sale_lines (sale_id, product_id, presentation_id, quantity, unit_price, price_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range sale.Lines {
		l := &sale.Lines[i]
		l.SaleID = sale.ID
		err := r.q.QueryRow(ctx, lineQuery,
			sale.ID, l.ProductID, l.PresentationID, l.Quantity, l.UnitPrice, l.PriceID,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

const saleColumns = `
	s.id, s.branch_id, s.user_id, s.client_id, s.payment_id, COALESCE(p.method, ''),
	s.voucher_type, s.payment_reference, s.total, s.imei, s.notes, s.created_at`

// GetByID devuelve la venta con sus líneas o nil si no existe.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales s
		LEFT JOIN payments p ON p.id = s.payment_id
		WHERE s.id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BranchID, &s.UserID, &s.ClientID, &s.PaymentID, &s.PaymentMethod,
		&s.VoucherType, &s.PaymentReference, &s.Total, &s.IMEI, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadLines([]*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// LinkPayment fija el pago creado como método real de la venta.
func (r *SaleRepo) LinkPayment(saleID, paymentID int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET payment_id = $2 WHERE id = $1`, saleID, paymentID)
	if err != nil {
		return fmt.Errorf("link payment: %w", err)
	}
	return nil
}

// Search ejecuta una consulta declarativa sobre el historial. El total
// de la página se obtiene con COUNT(*) OVER() en la misma pasada.
func (r *SaleRepo) Search(crit criteria.Criteria) ([]*entity.Sale, int, error) {
	where, args := buildWhere(crit.Filter)
	query := `
		SELECT ` + saleColumns + `, COUNT(*) OVER() AS total_rows
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
		LEFT JOIN payments p ON p.id = s.payment_id
		WHERE ` + where + buildTail(crit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	var total int
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.BranchID, &s.UserID, &s.ClientID, &s.PaymentID, &s.PaymentMethod,
			&s.VoucherType, &s.PaymentReference, &s.Total, &s.IMEI, &s.Notes, &s.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadLines(out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// loadLines carga las líneas de un conjunto de ventas en una sola consulta.
func (r *SaleRepo) loadLines(sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	index := make(map[int64]*entity.Sale, len(sales))
	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		index[s.ID] = s
		ids = append(ids, s.ID)
	}
	query := `
		SELECT sl.id, sl.sale_id, sl.product_id, sl.presentation_id,
		       COALESCE(pr.name, p.name, '') AS item_name,
		       sl.quantity, sl.unit_price, sl.price_id
		FROM sale_lines sl
		LEFT JOIN products p ON p.id = sl.product_id
		LEFT JOIN presentations pr ON pr.id = sl.presentation_id
		WHERE sl.sale_id = ANY($1)
		ORDER BY sl.sale_id, sl.id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.PresentationID, &l.ItemName, &l.Quantity, &l.UnitPrice, &l.PriceID); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		if s, ok := index[l.SaleID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	return rows.Err()
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos de venta.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserta el pago y asigna su ID.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (sale_id, method, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.SaleID, p.Method, p.Amount, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}
