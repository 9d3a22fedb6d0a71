package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	CashSessionOpen   = "OPEN"
	CashSessionClosed = "CLOSED"
)

// CashSession sesión de caja abierta en una sucursal por un usuario.
// El motor de ventas solo consulta la sesión abierta y enlaza ventas;
// apertura y cierre viven fuera de este módulo.
type CashSession struct {
	ID          int64
	BranchID    int64
	UserID      int64
	OpeningCash decimal.Decimal
	Status      string
	OpenedAt    time.Time
	ClosedAt    *time.Time
}
