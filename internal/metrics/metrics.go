package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Point operations
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total point operations",
		},
		[]string{"op", "status"}, // charge|use|get|histories, ok|rejected|error
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(OperationsTotal)
}

// ObserveKeyedPending exposes the per-user serializer's queue depth as a
// gauge sampled on scrape.
func ObserveKeyedPending(pending func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "keyed_pending_operations",
			Help: "Operations queued or running in the per-user serializer",
		},
		func() float64 { return float64(pending()) },
	))
}
