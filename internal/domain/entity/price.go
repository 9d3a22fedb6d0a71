package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de precio.
const (
	PriceStateApproved = "APPROVED"
	PriceStateRejected = "REJECTED"
)

// Tipos de precio: estándar (catálogo) o generado por solicitud
// (temporal, de un solo uso).
const (
	PriceKindStandard         = "STANDARD"
	PriceKindRequestGenerated = "REQUEST_GENERATED"
)

// Roles de precio según el canal.
const (
	PriceRolePublic    = "PUBLIC"
	PriceRoleWholesale = "WHOLESALE"
	PriceRoleSpecial   = "SPECIAL"
)

// Price registro de precio de un producto o presentación (exactamente
// uno de los dos). El flag Used es monotónico false→true: un precio
// REQUEST_GENERATED se consume a lo sumo una vez, vía reclamo optimista.
type Price struct {
	ID             int64
	ProductID      *int64
	PresentationID *int64
	Role           string
	Rank           int
	Amount         decimal.Decimal
	State          string
	Kind           string
	Used           bool
	ValidFrom      *time.Time
	ValidUntil     *time.Time // nil = vigente
	CreatedAt      time.Time
}

// IsTemporary indica si es un precio temporal aprobado (candidato a reclamo).
func (p Price) IsTemporary() bool {
	return p.Kind == PriceKindRequestGenerated && p.State == PriceStateApproved
}
