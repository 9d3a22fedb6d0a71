package cashbox

import (
	"fmt"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Gate política de caja: decide si una venta debe quedar atada a una
// sesión de caja abierta y realiza el enlace.
type Gate struct{}

// NewGate construye la puerta de caja.
func NewGate() *Gate {
	return &Gate{}
}

// RequiresRegister devuelve true si el rol y el método de pago exigen
// caja abierta: vendedores y gerentes cobrando en efectivo. Los
// administradores quedan exentos; los métodos no-efectivo también.
func RequiresRegister(role, method string) bool {
	if method != entity.PaymentMethodCash {
		return false
	}
	switch role {
	case entity.RoleSeller, entity.RoleManager:
		return true
	}
	return false
}

// AttachAndRecord enlaza la venta a la sesión abierta del usuario en la
// sucursal. Si no hay sesión abierta y la política la exige, la venta
// falla con ErrRegisterRequired (y la transacción revierte todo).
func (g *Gate) AttachAndRecord(cash repository.CashRepository, saleID, branchID, userID int64, requireIfCash bool, method string) error {
	session, err := cash.FindOpenSession(branchID, userID)
	if err != nil {
		return fmt.Errorf("buscar sesión de caja: %w", err)
	}
	if session == nil {
		if requireIfCash && method == entity.PaymentMethodCash {
			return domain.ErrRegisterRequired
		}
		return nil
	}
	if err := cash.LinkSale(session.ID, saleID); err != nil {
		return fmt.Errorf("enlazar venta a caja: %w", err)
	}
	return nil
}
