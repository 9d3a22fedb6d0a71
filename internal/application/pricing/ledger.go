package pricing

import (
	"fmt"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

// Ledger libro de precios: resuelve y valida precios seleccionados y
// reclama precios temporales de un solo uso con semántica
// compare-and-set sobre el flag used.
type Ledger struct{}

// NewLedger construye el libro de precios.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Resolved precio resuelto: el registro y la entidad dueña. El tipo
// resuelto es autoritativo frente a lo que diga el caller.
type Resolved struct {
	Price *entity.Price
	Item  entity.ItemRef
}

// ValidateAndResolve valida que el precio exista y no esté usado, y
// determina si pertenece a una presentación o a un producto simple.
// Para presentaciones resuelve el producto dueño vía catálogo.
func (l *Ledger) ValidateAndResolve(prices repository.PriceRepository, products repository.ProductRepository, priceID int64) (*Resolved, error) {
	price, err := prices.GetByID(priceID)
	if err != nil {
		return nil, fmt.Errorf("resolver precio %d: %w", priceID, err)
	}
	if price == nil || price.Used {
		return nil, fmt.Errorf("%w (#%d)", domain.ErrInvalidPrice, priceID)
	}

	if price.PresentationID != nil {
		pres, err := products.GetPresentation(*price.PresentationID)
		if err != nil {
			return nil, fmt.Errorf("resolver presentación %d: %w", *price.PresentationID, err)
		}
		if pres == nil {
			return nil, fmt.Errorf("%w: presentación %d no existe", domain.ErrInvalidPrice, *price.PresentationID)
		}
		return &Resolved{Price: price, Item: entity.PresentationRef(pres.ID, pres.ProductID)}, nil
	}

	if price.ProductID != nil {
		return &Resolved{Price: price, Item: entity.ProductRef(*price.ProductID)}, nil
	}

	// Precio huérfano: sin producto ni presentación asociada.
	return nil, fmt.Errorf("%w: precio #%d sin entidad asociada", domain.ErrInvalidPrice, priceID)
}

// ClaimTemporary reclama los precios temporales aprobados dentro del
// conjunto seleccionado. El update condicional marca used=true solo
// donde used=false; si las filas afectadas no cuadran con lo pedido,
// otra venta concurrente ganó el reclamo y se aborta antes de tocar
// stock (la transacción que pierde no deja descuentos parciales).
func (l *Ledger) ClaimTemporary(prices repository.PriceRepository, selectedIDs []int64) (int64, error) {
	if len(selectedIDs) == 0 {
		return 0, nil
	}
	temporary, err := prices.ListTemporaryApproved(selectedIDs)
	if err != nil {
		return 0, fmt.Errorf("listar precios temporales: %w", err)
	}
	if len(temporary) == 0 {
		return 0, nil
	}
	claimed, err := prices.ClaimUnused(temporary)
	if err != nil {
		return 0, fmt.Errorf("reclamar precios temporales: %w", err)
	}
	if claimed != int64(len(temporary)) {
		return claimed, domain.ErrPriceClaimConflict
	}
	return claimed, nil
}
