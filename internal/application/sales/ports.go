package sales

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// ReceiptGenerator produce el comprobante imprimible de una venta.
type ReceiptGenerator interface {
	Render(sale *entity.Sale) ([]byte, error)
}
