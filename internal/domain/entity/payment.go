package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCredit   = "CREDIT"
	PaymentMethodOther    = "OTHER"
)

// Payment pago asociado a una venta. Para ventas a crédito el monto se
// registra en cero y el método queda fijo en CREDIT.
type Payment struct {
	ID        int64
	SaleID    int64
	Method    string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
