package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/ports"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/tracking"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
)

// RegisterDeliveryUseCase registra una entrega de stock: cabecera,
// lotes nuevos y rastro en el historial, todo en una transacción.
type RegisterDeliveryUseCase struct {
	txRunner ports.TxRunner
	ledger   *Ledger
	tracker  *tracking.Tracker
	log      *logger.Logger
}

// NewRegisterDeliveryUseCase construye el caso de uso.
func NewRegisterDeliveryUseCase(txRunner ports.TxRunner, ledger *Ledger, tracker *tracking.Tracker, log *logger.Logger) *RegisterDeliveryUseCase {
	return &RegisterDeliveryUseCase{txRunner: txRunner, ledger: ledger, tracker: tracker, log: log}
}

// DeliveryEntry línea de entrega: entidad, cantidad y costo unitario
// (el costo unitario llega ya prorrateado; este motor no lo calcula).
type DeliveryEntry struct {
	Item       entity.ItemRef
	Quantity   int64
	UnitCost   decimal.Decimal
	ReceivedAt time.Time
	ExpiresAt  *time.Time
}

// DeliveryInput entrada para registrar una entrega.
type DeliveryInput struct {
	BranchID     int64
	SupplierID   *int64
	ReceivedByID int64
	Entries      []DeliveryEntry
}

// RegisterDelivery crea la cabecera, un lote por línea y el rastro con
// snapshot anterior/posterior por entidad.
func (uc *RegisterDeliveryUseCase) RegisterDelivery(ctx context.Context, in DeliveryInput) (*entity.StockDelivery, error) {
	if in.BranchID == 0 || in.ReceivedByID == 0 || len(in.Entries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, e := range in.Entries {
		if e.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, e.Quantity)
		}
		if e.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	var delivery *entity.StockDelivery
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		total := decimal.Zero
		for _, e := range in.Entries {
			total = total.Add(e.UnitCost.Mul(decimal.NewFromInt(e.Quantity)))
		}
		delivery = &entity.StockDelivery{
			SupplierID:   in.SupplierID,
			BranchID:     in.BranchID,
			ReceivedByID: in.ReceivedByID,
			TotalCost:    total.Round(4),
			CreatedAt:    time.Now(),
		}
		if err := r.Deliveries.Create(delivery); err != nil {
			return fmt.Errorf("crear entrega: %w", err)
		}

		var entries []tracking.Entry
		for _, e := range in.Entries {
			before, err := uc.ledger.Aggregate(r.Lots, e.Item, in.BranchID)
			if err != nil {
				return err
			}
			receivedAt := e.ReceivedAt
			if receivedAt.IsZero() {
				receivedAt = time.Now()
			}
			lot := &entity.StockLot{
				ProductID:    e.Item.ProductID,
				BranchID:     in.BranchID,
				InitialQty:   e.Quantity,
				RemainingQty: e.Quantity,
				UnitCost:     e.UnitCost,
				ReceivedAt:   receivedAt,
				ExpiresAt:    e.ExpiresAt,
				DeliveryID:   &delivery.ID,
			}
			if e.Item.IsPresentation() {
				presID := e.Item.PresentationID
				lot.PresentationID = &presID
			}
			if err := r.Lots.Create(lot); err != nil {
				return fmt.Errorf("crear lote: %w", err)
			}
			entries = append(entries, tracking.Entry{Item: e.Item, QtyBefore: before, QtyDelta: e.Quantity})
		}

		note := fmt.Sprintf("Registro generado por entrega #%d", delivery.ID)
		return uc.tracker.Record(r.Movements, entries, tracking.Meta{
			BranchID: in.BranchID,
			UserID:   in.ReceivedByID,
			Reason:   entity.MovementReasonDelivery,
			Note:     note,
		})
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("sucursal", in.BranchID).Msg("registrar entrega de stock")
		return nil, err
	}
	return delivery, nil
}

// RemoveLot elimina un lote por corrección explícita dejando rastro del
// antes/después en el historial.
func (uc *RegisterDeliveryUseCase) RemoveLot(ctx context.Context, lotID, branchID, userID int64, reason string) error {
	if reason == "" {
		reason = "Sin motivo especificado"
	}
	return uc.txRunner.Run(ctx, func(r ports.Repos) error {
		lot, err := r.Lots.GetByID(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		before, err := uc.ledger.Aggregate(r.Lots, lot.Item(), branchID)
		if err != nil {
			return err
		}
		if err := r.Lots.Delete(lot.ID); err != nil {
			return fmt.Errorf("eliminar lote: %w", err)
		}
		return uc.tracker.Record(r.Movements, []tracking.Entry{{
			Item:      lot.Item(),
			QtyBefore: before,
			QtyDelta:  -lot.RemainingQty,
		}}, tracking.Meta{
			BranchID: branchID,
			UserID:   userID,
			Reason:   entity.MovementReasonRemoval,
			Note:     reason,
		})
	})
}
