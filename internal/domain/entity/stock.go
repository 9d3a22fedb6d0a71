package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot lote de stock fechado para una entidad (producto XOR
// presentación) en una sucursal. Inmutable salvo RemainingQty, que solo
// decrece por ventas (o correcciones explícitas, fuera de este motor) y
// nunca queda negativa.
type StockLot struct {
	ID             int64
	ProductID      int64
	PresentationID *int64
	BranchID       int64
	InitialQty     int64
	RemainingQty   int64
	UnitCost       decimal.Decimal
	ReceivedAt     time.Time
	ExpiresAt      *time.Time
	DeliveryID     *int64
}

// Item devuelve la referencia estructural de la entidad del lote.
func (l StockLot) Item() ItemRef {
	if l.PresentationID != nil {
		return PresentationRef(*l.PresentationID, l.ProductID)
	}
	return ProductRef(l.ProductID)
}

// StockThreshold umbral de stock mínimo por entidad. Solo lectura para
// el motor de ventas.
type StockThreshold struct {
	ID             int64
	ProductID      int64
	PresentationID *int64
	MinQty         int64
}

// StockDelivery cabecera de una entrega/recepción de stock (lotes
// asociados por DeliveryID).
type StockDelivery struct {
	ID           int64
	SupplierID   *int64
	BranchID     int64
	ReceivedByID int64
	TotalCost    decimal.Decimal
	CreatedAt    time.Time
}
