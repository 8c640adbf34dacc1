package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analyzer",
		Name:      "runs_total",
		Help:      "Count of analysis runs.",
	}, []string{"analysis", "network", "status"})

	analyzerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analyzer",
		Name:      "run_duration_seconds",
		Help:      "Duration of analysis runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 0.1s..~27m
	}, []string{"analysis", "network", "status"})

	analyzerRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analyzer",
		Name:      "records_total",
		Help:      "Count of records folded into an analysis, by outcome.",
	}, []string{"analysis", "network", "status"})
)

// Analyzer tracks metrics for one kind of analysis.
type Analyzer struct {
	analysis string
	network  model.Network
}

// NewAnalyzer constructs a metrics collector for the named analysis.
func NewAnalyzer(analysis string, network model.Network) *Analyzer {
	if analysis == "" {
		analysis = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Analyzer{analysis: analysis, network: network}
}

// ObserveRun records the outcome and duration of a whole run.
func (m Analyzer) ObserveRun(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	analyzerRunsTotal.WithLabelValues(m.analysis, string(m.network), status).Inc()
	analyzerRunDuration.WithLabelValues(m.analysis, string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveRecord records whether a record was folded or treated as unknown.
func (m Analyzer) ObserveRecord(err error) {
	status := "success"
	if err != nil {
		status = "unknown"
	}
	analyzerRecordsTotal.WithLabelValues(m.analysis, string(m.network), status).Inc()
}
