package sales

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/cashbox"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/customers"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/goals"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/inventory"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/notifications"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/ports"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/pricing"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/tracking"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
	"github.com/CardonaSantos/pos-ventas-api/pkg/metrics"
)

// CreateSaleUseCase orquesta la creación de una venta como unidad
// atómica: validación de precios, snapshot de stock, reclamo de precios
// temporales, descuento FIFO, totales, persistencia, historial,
// notificaciones de stock bajo, pago, política de caja y metas. Todo
// dentro de una transacción: ningún efecto de un paso sobrevive a un
// paso posterior que falle.
type CreateSaleUseCase struct {
	txRunner  ports.TxRunner
	prices    *pricing.Ledger
	stock     *inventory.Ledger
	notifier  *notifications.Notifier
	gate      *cashbox.Gate
	tracker   *tracking.Tracker
	goals     *goals.Tracker
	customers *customers.Service
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewCreateSaleUseCase construye el orquestador.
func NewCreateSaleUseCase(
	txRunner ports.TxRunner,
	prices *pricing.Ledger,
	stock *inventory.Ledger,
	notifier *notifications.Notifier,
	gate *cashbox.Gate,
	tracker *tracking.Tracker,
	goalsTracker *goals.Tracker,
	customersSvc *customers.Service,
	m *metrics.Metrics,
	log *logger.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:  txRunner,
		prices:    prices,
		stock:     stock,
		notifier:  notifier,
		gate:      gate,
		tracker:   tracker,
		goals:     goalsTracker,
		customers: customersSvc,
		metrics:   m,
		log:       log,
	}
}

// line línea validada y resuelta contra su precio.
type line struct {
	item      entity.ItemRef
	quantity  int64
	unitPrice decimal.Decimal
	priceID   int64
}

// lineKey llave estructural de consolidación: misma entidad y mismo
// precio seleccionado se funden en una sola línea antes de tocar stock.
type lineKey struct {
	item    entity.ItemRef
	priceID int64
}

// CreateSale ejecuta la venta completa. Los errores de dominio
// (precio inválido, stock insuficiente, etc.) se devuelven con su tipo;
// cualquier otra falla se registra con detalle y sale como ErrUnexpected.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.BranchID <= 0 || in.UserID <= 0 || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	var method string

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// 1) Rol real del actor. El método real del pago puede diferir
		// del solicitado (crédito); la política de caja se evalúa después
		// del pago con el método efectivamente registrado.
		role := entity.RoleSeller
		if actor, err := r.Users.GetByID(in.UserID); err != nil {
			return err
		} else if actor != nil {
			role = actor.Role
		}

		// 2) Destinatarios de alertas de inventario.
		recipients, err := r.Users.ListIDsByRoles([]string{entity.RoleAdmin, entity.RoleSeller})
		if err != nil {
			return err
		}

		// 3) Cliente: conectar o crear mínimo; sin datos queda como CF.
		clientID := in.ClientID
		if clientID == nil {
			clientID, err = uc.customers.CreateMinimal(r.Clients, customers.MinimalFields{
				Name:    in.ClientName,
				Surname: in.ClientSurname,
				DPI:     in.ClientDPI,
				NIT:     in.ClientNIT,
				Phone:   in.ClientPhone,
				Address: in.ClientAddress,
			})
			if err != nil {
				return err
			}
		}

		// 4) Validar líneas contra el precio seleccionado. El tipo
		// resuelto del precio manda; si el caller indicó otra entidad,
		// la venta falla.
		validated := make([]line, 0, len(in.Lines))
		for _, lr := range in.Lines {
			qty, err := normalizeQuantity(lr.Quantity)
			if err != nil {
				return err
			}
			resolved, err := uc.prices.ValidateAndResolve(r.Prices, r.Products, lr.SelectedPriceID)
			if err != nil {
				return err
			}
			if resolved.Item.IsPresentation() {
				if lr.PresentationID != 0 && lr.PresentationID != resolved.Item.PresentationID {
					return fmt.Errorf("%w: el precio #%d no corresponde a la presentación %d",
						domain.ErrMismatchedEntity, lr.SelectedPriceID, lr.PresentationID)
				}
			} else if lr.ProductID != 0 && lr.ProductID != resolved.Item.ProductID {
				return fmt.Errorf("%w: el precio #%d no corresponde al producto %d",
					domain.ErrMismatchedEntity, lr.SelectedPriceID, lr.ProductID)
			}
			validated = append(validated, line{
				item:      resolved.Item,
				quantity:  qty,
				unitPrice: resolved.Price.Amount,
				priceID:   lr.SelectedPriceID,
			})
		}

		// 5) Consolidar líneas duplicadas (misma entidad + mismo precio)
		// para no descontar dos veces el mismo juego de lotes.
		consolidated := consolidate(validated)

		// 6) Snapshot del stock anterior por entidad (para el cruce de
		// umbral y los deltas de auditoría).
		before := make(map[entity.ItemRef]int64, len(consolidated))
		items := make([]entity.ItemRef, 0, len(consolidated))
		for _, l := range consolidated {
			if _, ok := before[l.item]; ok {
				continue
			}
			qty, err := uc.stock.Aggregate(r.Lots, l.item, in.BranchID)
			if err != nil {
				return err
			}
			before[l.item] = qty
			items = append(items, l.item)
		}

		// 7) Reclamo de precios temporales, antes de mutar stock: la
		// transacción que pierde el reclamo no deja descuentos parciales.
		selectedIDs := make([]int64, 0, len(consolidated))
		seen := make(map[int64]struct{}, len(consolidated))
		for _, l := range consolidated {
			if _, ok := seen[l.priceID]; ok {
				continue
			}
			seen[l.priceID] = struct{}{}
			selectedIDs = append(selectedIDs, l.priceID)
		}
		if _, err := uc.prices.ClaimTemporary(r.Prices, selectedIDs); err != nil {
			return err
		}

		// 8) Descuento FIFO por línea consolidada.
		for _, l := range consolidated {
			if _, err := uc.stock.DepleteFIFO(r.Lots, l.item, in.BranchID, l.quantity); err != nil {
				return err
			}
		}

		// 9) Notificaciones de stock bajo (solo cruces, con dedupe).
		after := make(map[entity.ItemRef]int64, len(items))
		for _, item := range items {
			qty, err := uc.stock.Aggregate(r.Lots, item, in.BranchID)
			if err != nil {
				return err
			}
			after[item] = qty
			if err := uc.notifier.CheckCrossing(ctx, r.Thresholds, r.Notifications, r.Products,
				item, before[item], qty, recipients); err != nil {
				return err
			}
		}

		// 10) Totales: Σ(cantidad × precio unitario), punto fijo, 4 decimales.
		total := decimal.Zero
		for _, l := range consolidated {
			total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(l.quantity)))
		}
		total = total.Round(4)

		// 11) Crear venta + líneas en un solo paso.
		sale = &entity.Sale{
			BranchID:         in.BranchID,
			UserID:           in.UserID,
			ClientID:         clientID,
			VoucherType:      voucherOrDefault(in.VoucherType),
			PaymentReference: trimmedOrNil(in.PaymentReference),
			Total:            total,
			IMEI:             in.IMEI,
			Notes:            in.Notes,
			CreatedAt:        time.Now(),
		}
		for _, l := range consolidated {
			sl := entity.SaleLine{
				ProductID: l.item.ProductID,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice.Round(4),
				PriceID:   l.priceID,
			}
			if l.item.IsPresentation() {
				presID := l.item.PresentationID
				sl.PresentationID = &presID
			}
			sale.Lines = append(sale.Lines, sl)
		}
		if err := r.Sales.Create(sale); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}

		// 12) Historial de stock: un lote de registros por tipo de entidad.
		entries := make([]tracking.Entry, 0, len(consolidated))
		for _, l := range consolidated {
			entries = append(entries, tracking.Entry{
				Item:      l.item,
				QtyBefore: before[l.item],
				QtyDelta:  -l.quantity,
			})
		}
		if err := uc.tracker.RecordSaleExit(r.Movements, entries, in.BranchID, in.UserID, sale.ID); err != nil {
			return err
		}

		// 13) Pago: crédito se registra con monto 0 y método CREDIT fijo.
		method = in.PaymentMethod
		amount := total
		if method == entity.PaymentMethodCredit {
			amount = decimal.Zero
		}
		payment := &entity.Payment{
			SaleID:    sale.ID,
			Method:    method,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		if err := r.Payments.Create(payment); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}
		if err := r.Sales.LinkPayment(sale.ID, payment.ID); err != nil {
			return err
		}
		sale.PaymentID = &payment.ID
		sale.PaymentMethod = method

		// 14) Política de caja con el método real ya registrado.
		require := cashbox.RequiresRegister(role, method)
		if err := uc.gate.AttachAndRecord(r.Cash, sale.ID, in.BranchID, in.UserID, require, method); err != nil {
			return err
		}

		// 15) Meta del vendedor, misma transacción.
		return uc.goals.Increment(r.Goals, in.UserID, total, entity.GoalChannelStore)
	})

	if err != nil {
		if domain.Recognized(err) {
			uc.log.Warn().Err(err).Int64("sucursal", in.BranchID).Int64("usuario", in.UserID).Msg("venta rechazada")
			uc.metrics.SalesFailed.WithLabelValues(failReason(err)).Inc()
			return nil, err
		}
		uc.log.Error().Err(err).Int64("sucursal", in.BranchID).Int64("usuario", in.UserID).Msg("error inesperado en createSale")
		uc.metrics.SalesFailed.WithLabelValues("unexpected").Inc()
		return nil, domain.ErrUnexpected
	}

	uc.metrics.SalesCreated.Inc()
	totalF, _ := sale.Total.Float64()
	uc.metrics.SaleTotal.Observe(totalF)
	uc.log.Info().Int64("venta", sale.ID).Str("metodo", method).Str("total", sale.Total.String()).Msg("venta creada")

	return toSaleResponse(sale), nil
}

// consolidate suma cantidades de líneas con la misma (entidad, precio),
// conservando el orden de primera aparición.
func consolidate(lines []line) []line {
	index := make(map[lineKey]int, len(lines))
	out := make([]line, 0, len(lines))
	for _, l := range lines {
		k := lineKey{item: l.item, priceID: l.priceID}
		if i, ok := index[k]; ok {
			out[i].quantity += l.quantity
			continue
		}
		index[k] = len(out)
		out = append(out, l)
	}
	return out
}

// normalizeQuantity exige un número finito, entero y positivo.
func normalizeQuantity(q float64) (int64, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 || q != math.Trunc(q) {
		return 0, fmt.Errorf("%w en una de las líneas", domain.ErrInvalidQuantity)
	}
	return int64(q), nil
}

func voucherOrDefault(v string) string {
	if v == "" {
		return entity.VoucherReceipt
	}
	return v
}

func trimmedOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func failReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, domain.ErrMismatchedEntity):
		return "mismatched_entity"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrPriceClaimConflict):
		return "price_claim_conflict"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrRegisterRequired):
		return "register_required"
	}
	return "domain"
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:               s.ID,
		BranchID:         s.BranchID,
		UserID:           s.UserID,
		ClientID:         s.ClientID,
		PaymentMethod:    s.PaymentMethod,
		VoucherType:      s.VoucherType,
		PaymentReference: s.PaymentReference,
		Total:            s.Total,
		CreatedAt:        s.CreatedAt,
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:             l.ID,
			ProductID:      l.ProductID,
			PresentationID: l.PresentationID,
			ItemName:       l.ItemName,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			PriceID:        l.PriceID,
		})
	}
	return resp
}
