// Package metrics exposes Prometheus instrumentation for vault backend calls.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendOpsTotal *prometheus.CounterVec

	metricsOnce       sync.Once
	metricsRegistered bool
)

// InitMetrics registers all Prometheus metrics. Call once at startup if
// metrics are wanted; recording functions are no-ops until then.
func InitMetrics() {
	metricsOnce.Do(func() {
		backendOpsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultkit_backend_operations_total",
				Help: "Total number of vault backend primitive calls by operation and status",
			},
			[]string{"operation", "status"},
		)
		metricsRegistered = true
	})
}

// RecordBackendOp records one backend primitive call.
func RecordBackendOp(operation, status string) {
	if !metricsRegistered {
		return
	}
	backendOpsTotal.WithLabelValues(operation, status).Inc()
}
