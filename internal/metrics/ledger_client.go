// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ledger_client",
		Name:      "operations_total",
		Help:      "Count of ledger query service operations.",
	}, []string{"operation", "provider", "network", "status"})
	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ledger_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger query service operations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"operation", "provider", "network", "status"})
)

// LedgerClient tracks metrics for calls to a ledger query service.
type LedgerClient struct {
	provider model.Provider
	network  model.Network
}

// NewLedgerClient constructs a metrics collector for ledger calls.
func NewLedgerClient(provider model.Provider, network model.Network) *LedgerClient {
	if provider == "" {
		provider = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &LedgerClient{provider: provider, network: network}
}

// Observe records a single call outcome and duration.
func (m LedgerClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ledgerRequestsTotal.WithLabelValues(operation, string(m.provider), string(m.network), status).Inc()
	ledgerRequestDuration.WithLabelValues(operation, string(m.provider), string(m.network), status).Observe(time.Since(started).Seconds())
}
