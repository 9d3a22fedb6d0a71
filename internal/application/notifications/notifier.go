package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/repository"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
)

// NameCache caché de nombres de catálogo para armar mensajes sin
// golpear la BD en cada alerta. Un miss no es error.
type NameCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

const nameCacheTTL = 12 * time.Hour

// Notifier detector de cruces de umbral de stock mínimo. Emite a lo
// sumo una notificación por entidad y cruce; si ya hay una abierta para
// el umbral, solo agrega los destinatarios faltantes.
type Notifier struct {
	names NameCache
	log   *logger.Logger
}

// NewNotifier construye el notificador.
func NewNotifier(names NameCache, log *logger.Logger) *Notifier {
	return &Notifier{names: names, log: log}
}

// CheckCrossing evalúa el cruce (antes > mínimo && después <= mínimo) y
// notifica. "Ya estaba por debajo" no es un cruce y no re-dispara.
func (n *Notifier) CheckCrossing(
	ctx context.Context,
	thresholds repository.ThresholdRepository,
	notifs repository.NotificationRepository,
	products repository.ProductRepository,
	item entity.ItemRef,
	before, after int64,
	recipientIDs []int64,
) error {
	th, err := thresholds.GetByItem(item)
	if err != nil {
		return fmt.Errorf("consultar umbral: %w", err)
	}
	if th == nil {
		return nil
	}
	crossed := before > th.MinQty && after <= th.MinQty
	if !crossed {
		return nil
	}

	existing, attached, err := notifs.FindOpenByReference(entity.NotificationCategoryInventory, th.ID)
	if err != nil {
		return fmt.Errorf("buscar notificación abierta: %w", err)
	}

	already := make(map[int64]struct{}, len(attached))
	for _, id := range attached {
		already[id] = struct{}{}
	}
	var missing []int64
	for _, id := range recipientIDs {
		if _, ok := already[id]; !ok {
			missing = append(missing, id)
		}
	}
	// Notificación abierta que ya cubre a todos: no re-disparar.
	if existing != nil && len(missing) == 0 {
		return nil
	}

	name := n.displayName(ctx, products, item)
	if existing == nil {
		refID := th.ID
		notice := &entity.Notification{
			Title:       fmt.Sprintf("Stock mínimo de %s alcanzado", name),
			Message:     fmt.Sprintf("%s ha alcanzado el stock mínimo (quedan %d uds).", name, after),
			Category:    entity.NotificationCategoryInventory,
			ReferenceID: &refID,
			Open:        true,
			CreatedAt:   time.Now(),
		}
		if err := notifs.Create(notice, recipientIDs); err != nil {
			return fmt.Errorf("crear notificación: %w", err)
		}
		return nil
	}
	if err := notifs.AttachRecipients(existing.ID, missing); err != nil {
		return fmt.Errorf("asociar destinatarios: %w", err)
	}
	return nil
}

// displayName resuelve el nombre mostrado de la entidad, con caché
// read-through. Si todo falla se usa el id como texto.
func (n *Notifier) displayName(ctx context.Context, products repository.ProductRepository, item entity.ItemRef) string {
	key := fmt.Sprintf("catalog:name:%s:%d", item.Kind(), item.EntityID())
	if n.names != nil {
		if v, ok, err := n.names.Get(ctx, key); err == nil && ok {
			return v
		}
	}

	var name string
	if item.IsPresentation() {
		if pres, err := products.GetPresentation(item.PresentationID); err == nil && pres != nil {
			name = pres.Name
		}
	} else {
		if prod, err := products.GetProduct(item.ProductID); err == nil && prod != nil {
			name = prod.Name
		}
	}
	if name == "" {
		return fmt.Sprintf("#%d", item.EntityID())
	}
	if n.names != nil {
		if err := n.names.Set(ctx, key, name, nameCacheTTL); err != nil {
			n.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear nombre de catálogo")
		}
	}
	return name
}
