package entity

import "time"

// Categorías de notificación.
const (
	NotificationCategoryInventory = "INVENTARIO"
)

// Notification alerta emitida a un conjunto de usuarios. Para alertas de
// inventario ReferenceID apunta al umbral que la originó; mientras esté
// abierta, un nuevo cruce del mismo umbral solo agrega destinatarios
// faltantes en lugar de re-emitir.
type Notification struct {
	ID          int64
	Title       string
	Message     string
	Category    string
	ReferenceID *int64
	Open        bool
	CreatedAt   time.Time
}
