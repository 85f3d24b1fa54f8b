package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout outcomes.
type CheckoutMetrics struct {
	Attempts  prometheus.Counter     // Checkout calls received
	Successes prometheus.Counter     // Committed checkouts
	Failures  *prometheus.CounterVec // Aborted checkouts, labeled by reason
}

// NewCheckoutMetrics builds and registers the checkout counters. Tests pass
// their own registry so repeated construction does not collide.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	attempts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gamestore",
		Name:      "checkout_attempts_total",
		Help:      "Total number of checkout calls.",
	})
	successes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gamestore",
		Name:      "checkout_success_total",
		Help:      "Total number of committed checkouts.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gamestore",
		Name:      "checkout_failures_total",
		Help:      "Total number of aborted checkouts by reason.",
	}, []string{"reason"})

	reg.MustRegister(attempts, successes, failures)
	return &CheckoutMetrics{Attempts: attempts, Successes: successes, Failures: failures}
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
