package repository

import (
	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/criteria"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
)

// SaleRepository puerto de ventas. Create persiste cabecera y líneas en
// un solo paso; el ID de la venta existe solo después de ese paso.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	// LinkPayment fija el pago ya creado como método real de la venta.
	LinkPayment(saleID, paymentID int64) error
	// Search ejecuta una consulta declarativa y devuelve página + total.
	Search(crit criteria.Criteria) ([]*entity.Sale, int, error)
}

// PaymentRepository puerto de pagos.
type PaymentRepository interface {
	Create(p *entity.Payment) error
}

// GoalRepository puerto del acumulado de metas por usuario y canal.
type GoalRepository interface {
	Increment(userID int64, amount decimal.Decimal, channel string) error
}
