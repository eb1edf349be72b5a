package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeErrors tracks swallowed backend errors by operation.
	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsaura_store_errors_total",
			Help: "Total number of soft-failed Redis operations",
		},
		[]string{"operation"}, // "get", "set", "delete", "keys"
	)

	// storeDisabled is 1 while the adapter runs in degraded no-op mode.
	storeDisabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsaura_store_disabled",
			Help: "Whether the Redis adapter is disabled (1) or active (0)",
		},
	)
)
