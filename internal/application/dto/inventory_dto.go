package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryEntryRequest línea de una entrega de stock. Exactamente una
// de product_id/presentation_id identifica la entidad.
type DeliveryEntryRequest struct {
	ProductID      int64           `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	PresentationID int64           `json:"presentation_id,omitempty" validate:"omitempty,gt=0"`
	OwnerProductID int64           `json:"owner_product_id,omitempty" validate:"omitempty,gt=0"`
	Quantity       int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ReceivedAt     *time.Time      `json:"received_at,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
}

// RegisterDeliveryRequest body para POST /api/deliveries.
type RegisterDeliveryRequest struct {
	BranchID     int64                  `json:"branch_id" validate:"required,gt=0"`
	SupplierID   *int64                 `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	ReceivedByID int64                  `json:"received_by_id" validate:"required,gt=0"`
	Entries      []DeliveryEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// DeliveryResponse cabecera de entrega creada.
type DeliveryResponse struct {
	ID         int64           `json:"id"`
	BranchID   int64           `json:"branch_id"`
	SupplierID *int64          `json:"supplier_id,omitempty"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RemoveLotRequest body para DELETE /api/stock-lots/:id.
type RemoveLotRequest struct {
	BranchID int64  `json:"branch_id" validate:"required,gt=0"`
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Reason   string `json:"reason,omitempty"`
}
