package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Ledger libro de stock: agregación por entidad/sucursal y descuento
// FIFO sobre lotes fechados. Los descuentos son updates condicionales
// por fila (restar solo si alcanza), de modo que dos ventas sobre el
// mismo juego de lotes se serializan por fila y ningún lote queda
// negativo; el todo-o-nada lo da la transacción que envuelve la venta.
type Ledger struct{}

// NewLedger construye el libro de stock.
func NewLedger() *Ledger {
	return &Ledger{}
}

// LotConsumption consumo aplicado a un lote durante un descuento.
type LotConsumption struct {
	LotID    int64
	Quantity int64
	UnitCost decimal.Decimal
}

// Depletion resultado de un descuento FIFO. Shortfall > 0 significa que
// los lotes no alcanzaron; el caller debe abortar la transacción para
// revertir los descuentos parciales.
type Depletion struct {
	Consumed  []LotConsumption
	Shortfall int64
}

// Aggregate devuelve la cantidad total restante de la entidad en la sucursal.
func (l *Ledger) Aggregate(lots repository.StockLotRepository, item entity.ItemRef, branchID int64) (int64, error) {
	total, err := lots.SumRemaining(item, branchID)
	if err != nil {
		return 0, fmt.Errorf("agregar stock: %w", err)
	}
	return total, nil
}

// DepleteFIFO descuenta qty de los lotes de la entidad en la sucursal,
// del más antiguo al más reciente (empates por id ascendente). Devuelve
// ErrInsufficientStock si los lotes se agotan antes de satisfacer qty.
func (l *Ledger) DepleteFIFO(lots repository.StockLotRepository, item entity.ItemRef, branchID, qty int64) (*Depletion, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	available, err := lots.ListAvailableFIFO(item, branchID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}

	dep := &Depletion{}
	remaining := qty
	for _, lot := range available {
		if remaining <= 0 {
			break
		}
		take := remaining
		if lot.RemainingQty < take {
			take = lot.RemainingQty
		}
		if take <= 0 {
			continue
		}
		ok, err := lots.Decrement(lot.ID, take)
		if err != nil {
			return nil, fmt.Errorf("descontar lote %d: %w", lot.ID, err)
		}
		if !ok {
			// Otra venta consumió el lote entre la lectura y el update
			// condicional; se sigue con el siguiente lote.
			continue
		}
		dep.Consumed = append(dep.Consumed, LotConsumption{LotID: lot.ID, Quantity: take, UnitCost: lot.UnitCost})
		remaining -= take
	}

	if remaining > 0 {
		dep.Shortfall = remaining
		return dep, fmt.Errorf("%w para %s %d (faltan %d)", domain.ErrInsufficientStock, lowerKind(item), item.EntityID(), remaining)
	}
	return dep, nil
}

func lowerKind(item entity.ItemRef) string {
	if item.IsPresentation() {
		return "presentación"
	}
	return "producto"
}
