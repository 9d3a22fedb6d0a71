package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante emitidos al cerrar una venta.
const (
	VoucherReceipt = "RECIBO"
	VoucherInvoice = "FACTURA"
	VoucherTicket  = "TICKET"
)

// Sale representa la cabecera de una venta. Inmutable una vez creada
// (salvo anulación administrativa, fuera de este motor). Se persiste en
// un solo paso junto con sus líneas; nunca queda a medias.
type Sale struct {
	ID               int64
	BranchID         int64
	UserID           int64
	ClientID         *int64 // nil = cliente final ("CF")
	PaymentID        *int64 // se enlaza al crear el pago, dentro de la misma transacción
	PaymentMethod    string // denormalizado del pago enlazado, solo lectura
	VoucherType      string
	PaymentReference *string
	Total            decimal.Decimal // redondeado a 4 decimales
	IMEI             string
	Notes            string
	CreatedAt        time.Time
	Lines            []SaleLine
}

// SaleLine línea de venta: referencia un producto o una (producto,
// presentación); cantidad > 0; el precio unitario es el valor del
// registro de precio al momento de crear la venta.
type SaleLine struct {
	ID             int64
	SaleID         int64
	ProductID      int64
	PresentationID *int64
	ItemName       string // denormalizado del catálogo al leer, solo lectura
	Quantity       int64
	UnitPrice      decimal.Decimal
	PriceID        int64
}

// Item devuelve la referencia estructural de la entidad vendida.
func (l SaleLine) Item() ItemRef {
	if l.PresentationID != nil {
		return PresentationRef(*l.PresentationID, l.ProductID)
	}
	return ProductRef(l.ProductID)
}
