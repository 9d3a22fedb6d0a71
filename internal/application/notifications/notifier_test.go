package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/notifications"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
	"github.com/CardonaSantos/pos-ventas-api/pkg/logger"
)

type thresholdStore struct {
	threshold *entity.StockThreshold
	item      entity.ItemRef
}

func (s *thresholdStore) GetByItem(item entity.ItemRef) (*entity.StockThreshold, error) {
	if s.threshold != nil && s.item == item {
		return s.threshold, nil
	}
	return nil, nil
}

func thresholdFor(id int64, item entity.ItemRef, minQty int64) *thresholdStore {
	th := &entity.StockThreshold{ID: id, ProductID: item.ProductID, MinQty: minQty}
	if item.IsPresentation() {
		pid := item.PresentationID
		th.PresentationID = &pid
	}
	return &thresholdStore{threshold: th, item: item}
}

type noticeStore struct {
	open      *entity.Notification
	attached  []int64
	created   []*entity.Notification
	createdTo [][]int64
	extra     [][]int64
}

func (s *noticeStore) FindOpenByReference(category string, referenceID int64) (*entity.Notification, []int64, error) {
	if s.open != nil && s.open.Category == category && s.open.ReferenceID != nil && *s.open.ReferenceID == referenceID {
		return s.open, s.attached, nil
	}
	return nil, nil, nil
}

func (s *noticeStore) Create(n *entity.Notification, recipientIDs []int64) error {
	n.ID = int64(len(s.created) + 1)
	s.created = append(s.created, n)
	s.createdTo = append(s.createdTo, recipientIDs)
	return nil
}

func (s *noticeStore) AttachRecipients(notificationID int64, userIDs []int64) error {
	s.extra = append(s.extra, userIDs)
	return nil
}

type catalogStore struct {
	products      map[int64]*entity.Product
	presentations map[int64]*entity.Presentation
	productHits   int
}

func (s *catalogStore) GetProduct(id int64) (*entity.Product, error) {
	s.productHits++
	return s.products[id], nil
}

func (s *catalogStore) GetPresentation(id int64) (*entity.Presentation, error) {
	return s.presentations[id], nil
}

type memNameCache struct {
	values map[string]string
}

func (c *memNameCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memNameCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.values == nil {
		c.values = map[string]string{}
	}
	c.values[key] = value
	return nil
}

func newNotifier(cache notifications.NameCache) *notifications.Notifier {
	log := logger.New(logger.Config{Level: "error", Env: "development"})
	return notifications.NewNotifier(cache, log)
}

func TestCheckCrossing(t *testing.T) {
	item := entity.ProductRef(10)
	catalog := &catalogStore{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Panadol Forte"},
	}}

	t.Run("cruce del umbral crea la notificación", func(t *testing.T) {
		thresholds := thresholdFor(300, item, 5)
		notices := &noticeStore{}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 8, 4, []int64{1, 2})
		require.NoError(t, err)
		require.Len(t, notices.created, 1)
		assert.Contains(t, notices.created[0].Message, "Panadol Forte")
		assert.Contains(t, notices.created[0].Message, "quedan 4")
		assert.Equal(t, entity.NotificationCategoryInventory, notices.created[0].Category)
		assert.ElementsMatch(t, []int64{1, 2}, notices.createdTo[0])
	})

	t.Run("llegar exacto al mínimo también es cruce", func(t *testing.T) {
		thresholds := thresholdFor(300, item, 5)
		notices := &noticeStore{}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 6, 5, []int64{1})
		require.NoError(t, err)
		assert.Len(t, notices.created, 1)
	})

	t.Run("ya estaba por debajo no re-dispara", func(t *testing.T) {
		thresholds := thresholdFor(300, item, 5)
		notices := &noticeStore{}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 4, 2, []int64{1})
		require.NoError(t, err)
		assert.Empty(t, notices.created)
	})

	t.Run("sin umbral configurado no hace nada", func(t *testing.T) {
		notices := &noticeStore{}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), &thresholdStore{}, notices, catalog, item, 8, 0, []int64{1})
		require.NoError(t, err)
		assert.Empty(t, notices.created)
	})

	t.Run("notificación abierta que cubre a todos no duplica", func(t *testing.T) {
		thresholds := thresholdFor(300, item, 5)
		refID := int64(300)
		notices := &noticeStore{
			open:     &entity.Notification{ID: 9, Category: entity.NotificationCategoryInventory, ReferenceID: &refID, Open: true},
			attached: []int64{1, 2},
		}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 6, 4, []int64{1, 2})
		require.NoError(t, err)
		assert.Empty(t, notices.created)
		assert.Empty(t, notices.extra)
	})

	t.Run("notificación abierta agrega solo a los faltantes", func(t *testing.T) {
		thresholds := thresholdFor(300, item, 5)
		refID := int64(300)
		notices := &noticeStore{
			open:     &entity.Notification{ID: 9, Category: entity.NotificationCategoryInventory, ReferenceID: &refID, Open: true},
			attached: []int64{1},
		}
		n := newNotifier(nil)

		err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 6, 4, []int64{1, 2, 3})
		require.NoError(t, err)
		assert.Empty(t, notices.created)
		require.Len(t, notices.extra, 1)
		assert.ElementsMatch(t, []int64{2, 3}, notices.extra[0])
	})
}

func TestCheckCrossingPresentation(t *testing.T) {
	item := entity.PresentationRef(20, 11)
	catalog := &catalogStore{presentations: map[int64]*entity.Presentation{
		20: {ID: 20, ProductID: 11, Name: "Suero Oral caja x10"},
	}}
	thresholds := thresholdFor(301, item, 2)
	notices := &noticeStore{}
	n := newNotifier(nil)

	err := n.CheckCrossing(context.Background(), thresholds, notices, catalog, item, 3, 1, []int64{1})
	require.NoError(t, err)
	require.Len(t, notices.created, 1)
	assert.Contains(t, notices.created[0].Title, "Suero Oral caja x10")
}

func TestDisplayNameCache(t *testing.T) {
	item := entity.ProductRef(10)
	thresholds := thresholdFor(300, item, 5)
	catalog := &catalogStore{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Panadol Forte"},
	}}
	cache := &memNameCache{}
	n := newNotifier(cache)

	err := n.CheckCrossing(context.Background(), thresholds, &noticeStore{}, catalog, item, 8, 4, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.productHits)

	// Segundo cruce (tras reposición): el nombre sale del caché.
	err = n.CheckCrossing(context.Background(), thresholds, &noticeStore{}, catalog, item, 8, 4, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.productHits)
}

func TestDisplayNameFallback(t *testing.T) {
	item := entity.ProductRef(99)
	thresholds := thresholdFor(302, item, 5)
	notices := &noticeStore{}
	n := newNotifier(nil)

	err := n.CheckCrossing(context.Background(), thresholds, notices, &catalogStore{}, item, 8, 4, []int64{1})
	require.NoError(t, err)
	require.Len(t, notices.created, 1)
	assert.Contains(t, notices.created[0].Message, "#99")
}
