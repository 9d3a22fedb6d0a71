package entity

import "time"

// Razones de movimiento en el historial de stock.
const (
	MovementReasonSaleExit = "SALIDA_VENTA"
	MovementReasonDelivery = "ENTREGA_STOCK"
	MovementReasonRemoval  = "ELIMINACION_STOCK"
)

// MovementRecord registro append-only del historial de stock: cantidad
// anterior, delta y cantidad resultante por entidad, correlacionados por
// BatchID (un lote de registros por tipo de entidad y operación).
type MovementRecord struct {
	ID             int64
	BatchID        string // uuid de correlación
	ProductID      int64
	PresentationID *int64
	BranchID       int64
	UserID         int64
	SaleID         *int64
	QtyBefore      int64
	QtyDelta       int64 // negativo en salidas
	QtyAfter       int64
	Reason         string
	Note           string
	CreatedAt      time.Time
}
