package repository

import "github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"

// NotificationRepository puerto de notificaciones y sus destinatarios.
type NotificationRepository interface {
	// FindOpenByReference busca la notificación abierta de la categoría y
	// referencia dadas; devuelve también los ids de usuarios ya asociados.
	FindOpenByReference(category string, referenceID int64) (*entity.Notification, []int64, error)
	// Create inserta la notificación con sus destinatarios iniciales.
	Create(n *entity.Notification, recipientIDs []int64) error
	// AttachRecipients asocia destinatarios adicionales (ignora duplicados).
	AttachRecipients(notificationID int64, userIDs []int64) error
}

// MovementRepository puerto del historial de stock (append-only).
type MovementRepository interface {
	CreateBatch(records []*entity.MovementRecord) error
}

// CashRepository puerto de sesiones de caja.
type CashRepository interface {
	// FindOpenSession devuelve la sesión abierta del usuario en la sucursal o nil.
	FindOpenSession(branchID, userID int64) (*entity.CashSession, error)
	// LinkSale asocia la venta a la sesión de caja.
	LinkSale(sessionID, saleID int64) error
}
