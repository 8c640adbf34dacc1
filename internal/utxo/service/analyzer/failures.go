package analyzer

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"go.uber.org/zap"
)

// failureLog collects per-record failures of a run and reports them to metrics and logs.
type failureLog struct {
	metrics  AnalyzerMetrics
	logger   *zap.Logger
	failures []model.RecordFailure
}

func (f *failureLog) add(operation, key string, err error) {
	f.failures = append(f.failures, model.RecordFailure{Operation: operation, Key: key, Err: err})
	f.metrics.ObserveRecord(err)
	f.logger.Warn("record treated as unknown",
		zap.String("operation", operation),
		zap.String("key", key),
		zap.Error(err),
	)
}

func (f *failureLog) ok() {
	f.metrics.ObserveRecord(nil)
}

// aborted reports whether err stems from ctx being done, which ends the run instead of
// counting as a record failure.
func aborted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil
}
