package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/criteria"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
)

// Queries lecturas del historial de ventas. Corren fuera de
// transacción, directo contra el pool.
type Queries struct {
	sales    repository.SaleRepository
	receipts ReceiptGenerator
	log      *logger.Logger
}

// NewQueries construye el caso de uso de consultas.
func NewQueries(sales repository.SaleRepository, receipts ReceiptGenerator, log *logger.Logger) *Queries {
	return &Queries{sales: sales, receipts: receipts, log: log}
}

// ListByBranch pagina el historial de una sucursal aplicando los
// filtros declarativos del query.
func (q *Queries) ListByBranch(ctx context.Context, in dto.SaleHistoryQuery) (*dto.SaleListResponse, error) {
	if in.BranchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	crit, err := buildHistoryCriteria(in)
	if err != nil {
		return nil, err
	}

	rows, total, err := q.sales.Search(crit)
	if err != nil {
		q.log.Error().Err(err).Int64("sucursal", in.BranchID).Msg("buscar ventas")
		return nil, domain.ErrUnexpected
	}

	resp := &dto.SaleListResponse{
		Data: make([]dto.SaleResponse, 0, len(rows)),
		Meta: dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, s := range rows {
		resp.Data = append(resp.Data, *toSaleResponse(s))
	}
	return resp, nil
}

// GetByID devuelve una venta con sus líneas.
func (q *Queries) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	s, err := q.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta #%d: %w", id, domain.ErrNotFound)
	}
	return toSaleResponse(s), nil
}

// ReceiptPDF genera el comprobante PDF de una venta existente.
func (q *Queries) ReceiptPDF(ctx context.Context, id int64) ([]byte, error) {
	s, err := q.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta #%d: %w", id, domain.ErrNotFound)
	}
	pdf, err := q.receipts.Render(s)
	if err != nil {
		q.log.Error().Err(err).Int64("venta", id).Msg("generar comprobante")
		return nil, domain.ErrUnexpected
	}
	return pdf, nil
}

// buildHistoryCriteria traduce el query HTTP al árbol de predicados.
// Los campos refieren a los alias del SELECT del repositorio de ventas
// (s = ventas, c = clientes).
func buildHistoryCriteria(in dto.SaleHistoryQuery) (criteria.Criteria, error) {
	parts := []criteria.Predicate{
		criteria.Where("s.branch_id", criteria.OpEqual, in.BranchID),
	}

	if in.SellerID > 0 {
		parts = append(parts, criteria.Where("s.user_id", criteria.OpEqual, in.SellerID))
	}
	if in.ClientName != "" {
		parts = append(parts, criteria.Where("c.name", criteria.OpContainsFold, in.ClientName))
	}
	if in.ClientPhone != "" {
		parts = append(parts, criteria.Where("c.phone", criteria.OpContains, in.ClientPhone))
	}
	if in.PaymentReference != "" {
		parts = append(parts, criteria.Where("s.payment_reference", criteria.OpContains, in.PaymentReference))
	}
	if text := strings.TrimSpace(in.Text); text != "" {
		parts = append(parts, criteria.Or(
			criteria.Where("c.name", criteria.OpContainsFold, text),
			criteria.Where("s.payment_reference", criteria.OpContainsFold, text),
			criteria.Where("s.notes", criteria.OpContainsFold, text),
		))
	}
	if len(in.PaymentMethods) > 0 {
		parts = append(parts, criteria.Where("p.method", criteria.OpIn, in.PaymentMethods))
	}
	if len(in.VoucherTypes) > 0 {
		parts = append(parts, criteria.Where("s.voucher_type", criteria.OpIn, in.VoucherTypes))
	}

	from, to, err := parseDateRange(in.DateFrom, in.DateTo)
	if err != nil {
		return criteria.Criteria{}, err
	}
	parts = append(parts, criteria.Range("s.created_at", from, to))

	tf, tt, err := parseTotalRange(in.MinTotal, in.MaxTotal)
	if err != nil {
		return criteria.Criteria{}, err
	}
	if tf != nil {
		parts = append(parts, criteria.Where("s.total", criteria.OpGreaterEqual, *tf))
	}
	if tt != nil {
		parts = append(parts, criteria.Where("s.total", criteria.OpLessEqual, *tt))
	}

	return criteria.Criteria{
		Filter: criteria.And(parts...),
		Orders: []criteria.Order{historyOrder(in.SortBy, in.SortDir)},
		Limit:  in.Limit,
		Offset: in.Offset,
	}, nil
}

// parseDateRange interpreta fechas YYYY-MM-DD incluyentes como rango
// semiabierto: [from 00:00, to+1día 00:00).
func parseDateRange(fromRaw, toRaw string) (any, any, error) {
	var from, to any
	if fromRaw != "" {
		t, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date_from inválida", domain.ErrInvalidInput)
		}
		from = t
	}
	if toRaw != "" {
		t, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date_to inválida", domain.ErrInvalidInput)
		}
		to = t.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func parseTotalRange(minRaw, maxRaw *string) (*decimal.Decimal, *decimal.Decimal, error) {
	var min, max *decimal.Decimal
	if minRaw != nil && *minRaw != "" {
		d, err := decimal.NewFromString(*minRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: min_total inválido", domain.ErrInvalidInput)
		}
		min = &d
	}
	if maxRaw != nil && *maxRaw != "" {
		d, err := decimal.NewFromString(*maxRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: max_total inválido", domain.ErrInvalidInput)
		}
		max = &d
	}
	return min, max, nil
}

func historyOrder(sortBy, sortDir string) criteria.Order {
	field := "s.created_at"
	if sortBy == "total" {
		field = "s.total"
	}
	dir := criteria.Desc
	if sortDir == "asc" {
		dir = criteria.Asc
	}
	return criteria.Order{Field: field, Direction: dir}
}
