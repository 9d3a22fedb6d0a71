package goals

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Tracker acumulado de metas de venta por usuario y canal.
type Tracker struct{}

// NewTracker construye el tracker de metas.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Increment suma el monto de la venta al acumulado del usuario. Corre
// dentro de la transacción de la venta: si falla, la venta revierte.
func (t *Tracker) Increment(goalsRepo repository.GoalRepository, userID int64, amount decimal.Decimal, channel string) error {
	if err := goalsRepo.Increment(userID, amount, channel); err != nil {
		return fmt.Errorf("incrementar meta del usuario %d: %w", userID, err)
	}
	return nil
}
