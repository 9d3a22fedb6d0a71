package repository

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// PriceRepository puerto del libro de precios. El reclamo de precios
// temporales es un update condicional (compare-and-set sobre used):
// concurrentes sobre ids solapados se linealizan por fila.
type PriceRepository interface {
	// GetByID devuelve el precio o nil si no existe.
	GetByID(id int64) (*entity.Price, error)
	// ListTemporaryApproved filtra, de los ids dados, los que son
	// temporales (REQUEST_GENERATED) y están APPROVED.
	ListTemporaryApproved(ids []int64) ([]int64, error)
	// ClaimUnused marca used=true solo donde used=false y devuelve las
	// filas afectadas (un solo UPDATE condicional, sin ventana de carrera).
	ClaimUnused(ids []int64) (int64, error)
}
