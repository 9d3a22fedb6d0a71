package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores del motor de ventas, expuestos en /metrics.
type Metrics struct {
	SalesCreated prometheus.Counter
	SalesFailed  *prometheus.CounterVec
	SaleTotal    prometheus.Histogram
}

// New registra los colectores en el Registerer dado (en tests se pasa
// un prometheus.NewRegistry() para no chocar con el registro global).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SalesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pos_sales_created_total",
			Help: "Ventas confirmadas.",
		}),
		SalesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_sales_failed_total",
			Help: "Ventas rechazadas, por motivo.",
		}, []string{"reason"}),
		SaleTotal: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pos_sale_total_amount",
			Help:    "Distribución del monto total por venta.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}
