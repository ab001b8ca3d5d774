package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// CartMetrics counts cart mutations and samples cart totals at checkout.
type CartMetrics struct {
	mutations *prometheus.CounterVec
	totals    prometheus.Histogram
	lines     prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendo_cart_mutations_total",
		Help: "Cart mutations by operation and result.",
	}, []string{"op", "result"})
	totals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vendo_cart_checkout_total",
		Help:    "Cart grand total at checkout handoff.",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12),
	})
	lines := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vendo_cart_checkout_lines",
		Help:    "Number of cart lines at checkout handoff.",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})
	reg.MustRegister(mutations, totals, lines)
	return &CartMetrics{mutations: mutations, totals: totals, lines: lines}
}

// IncMutation records one cart mutation.
func (c *CartMetrics) IncMutation(op, result string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

// ObserveCheckout samples the grand total and line count handed to checkout.
func (c *CartMetrics) ObserveCheckout(total float64, lines int) {
	if c == nil || c.totals == nil {
		return
	}
	c.totals.Observe(total)
	c.lines.Observe(float64(lines))
}
