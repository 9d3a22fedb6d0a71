package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones y sus destinatarios (tabla puente
// notification_recipients).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de notificaciones. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// FindOpenByReference busca la notificación abierta de la categoría y
// referencia dadas; devuelve también los destinatarios ya asociados.
func (r *NotificationRepo) FindOpenByReference(category string, referenceID int64) (*entity.Notification, []int64, error) {
	ctx := context.Background()
	query := `
		SELECT id, title, message, category, reference_id, open, created_at
		FROM notifications
		WHERE category = $1 AND reference_id = $2 AND open = true
		ORDER BY created_at DESC
		LIMIT 1`
	var n entity.Notification
	err := r.q.QueryRow(ctx, query, category, referenceID).Scan(
		&n.ID, &n.Title, &n.Message, &n.Category, &n.ReferenceID, &n.Open, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("find open notification: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT user_id FROM notification_recipients WHERE notification_id = $1 ORDER BY user_id`, n.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list notification recipients: %w", err)
	}
	defer rows.Close()

	var recipients []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, id)
	}
	return &n, recipients, rows.Err()
}

// Create inserta la notificación con sus destinatarios iniciales.
func (r *NotificationRepo) Create(n *entity.Notification, recipientIDs []int64) error {
	query := `
		INSERT INTO notifications (title, message, category, reference_id, open, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		n.Title, n.Message, n.Category, n.ReferenceID, n.Open, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return r.AttachRecipients(n.ID, recipientIDs)
}

// AttachRecipients asocia destinatarios adicionales; duplicados se ignoran.
func (r *NotificationRepo) AttachRecipients(notificationID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO notification_recipients (notification_id, user_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, notificationID, userIDs); err != nil {
		return fmt.Errorf("attach recipients: %w", err)
	}
	return nil
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo historial de stock (append-only).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// CreateBatch inserta un lote de registros de historial.
func (r *MovementRepo) CreateBatch(records []*entity.MovementRecord) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_movements (batch_id, product_id, presentation_id, branch_id, user_id, sale_id, qty_before, qty_delta, qty_after, reason, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	for _, m := range records {
		err := r.q.QueryRow(ctx, query,
			m.BatchID, m.ProductID, m.PresentationID, m.BranchID, m.UserID, m.SaleID,
			m.QtyBefore, m.QtyDelta, m.QtyAfter, m.Reason, m.Note, m.CreatedAt,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("create movement: %w", err)
		}
	}
	return nil
}
