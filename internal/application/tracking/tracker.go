package tracking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Tracker historial de stock: escribe registros append-only con
// snapshot anterior, delta y cantidad resultante por entidad. Cada
// llamada forma un lote correlacionado por un uuid.
type Tracker struct{}

// NewTracker construye el tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Entry cambio de cantidad de una entidad dentro de un lote de registros.
// QtyDelta es positivo en entradas y negativo en salidas.
type Entry struct {
	Item      entity.ItemRef
	QtyBefore int64
	QtyDelta  int64
}

// Meta contexto común del lote de registros.
type Meta struct {
	BranchID int64
	UserID   int64
	SaleID   *int64
	Reason   string
	Note     string
}

// Record persiste el lote de registros en el historial dentro de la
// transacción del caller.
func (t *Tracker) Record(movements repository.MovementRepository, entries []Entry, meta Meta) error {
	if len(entries) == 0 {
		return nil
	}
	batchID := uuid.New().String()
	now := time.Now()
	records := make([]*entity.MovementRecord, 0, len(entries))
	for _, e := range entries {
		rec := &entity.MovementRecord{
			BatchID:   batchID,
			ProductID: e.Item.ProductID,
			BranchID:  meta.BranchID,
			UserID:    meta.UserID,
			SaleID:    meta.SaleID,
			QtyBefore: e.QtyBefore,
			QtyDelta:  e.QtyDelta,
			QtyAfter:  e.QtyBefore + e.QtyDelta,
			Reason:    meta.Reason,
			Note:      meta.Note,
			CreatedAt: now,
		}
		if e.Item.IsPresentation() {
			presID := e.Item.PresentationID
			rec.PresentationID = &presID
		}
		records = append(records, rec)
	}
	if err := movements.CreateBatch(records); err != nil {
		return fmt.Errorf("registrar historial de stock: %w", err)
	}
	return nil
}

// RecordSaleExit registra las salidas de una venta: un lote por tipo de
// entidad (productos y presentaciones por separado), con razón
// SALIDA_VENTA y referencia a la venta.
func (t *Tracker) RecordSaleExit(movements repository.MovementRepository, entries []Entry, branchID, userID, saleID int64) error {
	if len(entries) == 0 {
		return nil
	}
	var products, presentations []Entry
	for _, e := range entries {
		if e.Item.IsPresentation() {
			presentations = append(presentations, e)
		} else {
			products = append(products, e)
		}
	}
	meta := Meta{
		BranchID: branchID,
		UserID:   userID,
		SaleID:   &saleID,
		Reason:   entity.MovementReasonSaleExit,
		Note:     fmt.Sprintf("Registro generado por venta #%d", saleID),
	}
	if err := t.Record(movements, products, meta); err != nil {
		return err
	}
	return t.Record(movements, presentations, meta)
}
