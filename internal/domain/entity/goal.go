package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales sobre los que se acumulan metas de venta.
const (
	GoalChannelStore    = "tienda"
	GoalChannelDelivery = "domicilio"
)

// Goal acumulado de ventas de un usuario por canal; el motor solo lo
// incrementa dentro de la transacción de la venta.
type Goal struct {
	ID        int64
	UserID    int64
	Channel   string
	Total     decimal.Decimal
	UpdatedAt time.Time
}
