package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
)

func TestLineLabel(t *testing.T) {
	presID := int64(20)

	t.Run("usa el nombre de catálogo", func(t *testing.T) {
		assert.Equal(t, "Panadol Forte", lineLabel(entity.SaleLine{
			ProductID: 10, ItemName: "Panadol Forte",
		}))
		assert.Equal(t, "Suero Oral caja x10", lineLabel(entity.SaleLine{
			ProductID: 11, PresentationID: &presID, ItemName: "Suero Oral caja x10",
		}))
	})

	t.Run("sin nombre cae al identificador", func(t *testing.T) {
		assert.Equal(t, "Producto #10", lineLabel(entity.SaleLine{ProductID: 10}))
		assert.Equal(t, "Presentación #20 (producto #11)", lineLabel(entity.SaleLine{
			ProductID: 11, PresentationID: &presID,
		}))
	})
}

func TestRenderProducesPDF(t *testing.T) {
	g := NewReceiptGenerator("Farmacia Central")
	sale := &entity.Sale{
		ID:            42,
		BranchID:      1,
		UserID:        1,
		PaymentMethod: entity.PaymentMethodCash,
		VoucherType:   entity.VoucherReceipt,
		Total:         decimal.RequireFromString("76.5000"),
		CreatedAt:     time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Lines: []entity.SaleLine{
			{ID: 1, ProductID: 10, ItemName: "Panadol Forte", Quantity: 3, UnitPrice: decimal.RequireFromString("25.50"), PriceID: 100},
		},
	}

	out, err := g.Render(sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
