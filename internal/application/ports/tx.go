package ports

import (
	"context"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD, entregados
// por el TxRunner al callback del caso de uso.
type Repos struct {
	Prices        repository.PriceRepository
	Lots          repository.StockLotRepository
	Deliveries    repository.StockDeliveryRepository
	Thresholds    repository.ThresholdRepository
	Sales         repository.SaleRepository
	Payments      repository.PaymentRepository
	Users         repository.UserRepository
	Clients       repository.ClientRepository
	Notifications repository.NotificationRepository
	Movements     repository.MovementRepository
	Cash          repository.CashRepository
	Goals         repository.GoalRepository
	Products      repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil; Rollback en
// caso contrario. Garantiza el todo-o-nada del motor de ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
