package repository

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// StockLotRepository puerto de lotes de stock por entidad y sucursal.
type StockLotRepository interface {
	// SumRemaining suma la cantidad restante de los lotes de la entidad en la sucursal.
	SumRemaining(item entity.ItemRef, branchID int64) (int64, error)
	// ListAvailableFIFO lista lotes con restante > 0 ordenados por fecha de
	// ingreso ascendente; empates por id ascendente (determinismo FIFO).
	ListAvailableFIFO(item entity.ItemRef, branchID int64) ([]*entity.StockLot, error)
	// Decrement resta qty del lote solo si el restante alcanza
	// (UPDATE ... WHERE remaining_qty >= qty); nunca deja negativos.
	// Devuelve false si la condición no se cumplió.
	Decrement(lotID, qty int64) (bool, error)
	// Create inserta un lote nuevo (entrega de stock) y asigna su ID.
	Create(lot *entity.StockLot) error
	// GetByID devuelve el lote o nil si no existe.
	GetByID(id int64) (*entity.StockLot, error)
	// Delete elimina un lote (corrección explícita, con auditoría aparte).
	Delete(id int64) error
}

// StockDeliveryRepository puerto de cabeceras de entrega de stock.
type StockDeliveryRepository interface {
	Create(d *entity.StockDelivery) error
}

// ThresholdRepository puerto de umbrales de stock mínimo (solo lectura
// para el motor de ventas).
type ThresholdRepository interface {
	// GetByItem devuelve el umbral configurado para la entidad o nil.
	GetByItem(item entity.ItemRef) (*entity.StockThreshold, error)
}
