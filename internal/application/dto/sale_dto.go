package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea solicitada: la entidad puede venir como
// product_id o presentation_id, pero el dueño real lo decide el precio
// seleccionado; si ambos vienen y no coinciden, la venta falla.
type SaleLineRequest struct {
	ProductID       int64   `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	PresentationID  int64   `json:"presentation_id,omitempty" validate:"omitempty,gt=0"`
	Quantity        float64 `json:"quantity" validate:"required"`
	SelectedPriceID int64   `json:"selected_price_id" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	BranchID         int64             `json:"branch_id" validate:"required,gt=0"`
	UserID           int64             `json:"user_id" validate:"required,gt=0"`
	ClientID         *int64            `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	ClientName       string            `json:"client_name,omitempty"`
	ClientSurname    string            `json:"client_surname,omitempty"`
	ClientDPI        string            `json:"client_dpi,omitempty"`
	ClientNIT        string            `json:"client_nit,omitempty"`
	ClientPhone      string            `json:"client_phone,omitempty"`
	ClientAddress    string            `json:"client_address,omitempty"`
	Lines            []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod    string            `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER CREDIT OTHER"`
	VoucherType      string            `json:"voucher_type,omitempty" validate:"omitempty,oneof=RECIBO FACTURA TICKET"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	IMEI             string            `json:"imei,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

// SaleLineResponse línea en respuestas.
type SaleLineResponse struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product_id"`
	PresentationID *int64          `json:"presentation_id,omitempty"`
	ItemName       string          `json:"item_name,omitempty"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PriceID        int64           `json:"price_id"`
}

// SaleResponse venta creada o consultada.
type SaleResponse struct {
	ID               int64              `json:"id"`
	BranchID         int64              `json:"branch_id"`
	UserID           int64              `json:"user_id"`
	ClientID         *int64             `json:"client_id,omitempty"`
	PaymentMethod    string             `json:"payment_method,omitempty"`
	VoucherType      string             `json:"voucher_type,omitempty"`
	PaymentReference *string            `json:"payment_reference,omitempty"`
	Total            decimal.Decimal    `json:"total"`
	CreatedAt        time.Time          `json:"created_at"`
	Lines            []SaleLineResponse `json:"lines"`
}

// SaleHistoryQuery filtros del historial de ventas por sucursal.
type SaleHistoryQuery struct {
	PageRequest
	BranchID         int64   `query:"branch_id" validate:"required,gt=0"`
	SortBy           string  `query:"sort_by" validate:"omitempty,oneof=created_at total"`
	SortDir          string  `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
	ClientName       string  `query:"client_name"`
	ClientPhone      string  `query:"client_phone"`
	PaymentReference string  `query:"payment_reference"`
	Text             string  `query:"text"`
	DateFrom         string  `query:"date_from"` // YYYY-MM-DD, incluyente
	DateTo           string  `query:"date_to"`   // YYYY-MM-DD, incluyente
	MinTotal         *string `query:"min_total"`
	MaxTotal         *string `query:"max_total"`
	PaymentMethods   []string `query:"payment_methods"`
	VoucherTypes     []string `query:"voucher_types"`
	SellerID         int64   `query:"seller_id"` // restringe al vendedor (vista de vendedor)
}

// SaleListResponse página del historial.
type SaleListResponse struct {
	Data []SaleResponse `json:"data"`
	Meta PageResponse   `json:"meta"`
}
