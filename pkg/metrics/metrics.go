package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Checkouts    *prometheus.CounterVec
	SinkFailures *prometheus.CounterVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "checkout",
		Name:      "checkouts_total",
		Help:      "Total number of checkout invocations by outcome.",
	}, []string{"outcome"})

	sinkFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "checkout",
		Name:      "sink_failures_total",
		Help:      "Total number of absorbed notification sink failures.",
	}, []string{"sink"})

	reg.MustRegister(checkouts, sinkFailures)
	return &CheckoutMetrics{Checkouts: checkouts, SinkFailures: sinkFailures}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
