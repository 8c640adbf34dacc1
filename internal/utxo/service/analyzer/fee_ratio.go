package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/analytics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"go.uber.org/zap"
)

// RatioMode selects how the transactions of a block are obtained.
type RatioMode string

const (
	// RatioModeBlock reads the whole block in one request.
	RatioModeBlock RatioMode = "block"
	// RatioModePerTx fetches every listed transaction on its own.
	RatioModePerTx RatioMode = "per-tx"
)

// ParseRatioMode validates a mode name.
func ParseRatioMode(s string) (RatioMode, error) {
	switch m := RatioMode(s); m {
	case RatioModeBlock, RatioModePerTx:
		return m, nil
	default:
		return "", fmt.Errorf("%w: ratio mode %q", chain.ErrValidation, s)
	}
}

// FeeRatioService finds the transactions with the lowest and highest fee-to-output ratio
// in a block.
type FeeRatioService struct {
	source  LedgerSource
	metrics AnalyzerMetrics
	logger  *zap.Logger
}

func NewFeeRatioService(
	source LedgerSource,
	metrics AnalyzerMetrics,
	network model.Network,
	logger *zap.Logger,
) (*FeeRatioService, error) {
	if source == nil {
		return nil, errors.New("ledger source is required")
	}
	if metrics == nil {
		return nil, errors.New("fee ratio metrics is required")
	}
	return &FeeRatioService{
		source:  source,
		metrics: metrics,
		logger: logger.Named("feeRatio").With(
			zap.String("network", string(network)),
		),
	}, nil
}

// Analyze evaluates the first block reported at height. Failing to obtain that block
// aborts; in per-tx mode single transactions that fail are reported and skipped.
func (s *FeeRatioService) Analyze(ctx context.Context, height uint64, mode RatioMode) (report *model.FeeRatioReport, err error) {
	if _, err := ParseRatioMode(string(mode)); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() {
		s.metrics.ObserveRun(err, started)
	}()

	blocks, err := s.source.FetchBlocksAtHeight(ctx, height)
	if err != nil {
		s.logger.Error("fetch blocks at height failed", zap.Uint64("height", height), zap.Error(err))
		return nil, fmt.Errorf("blocks at height %d: %w", height, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no block at height %d", chain.ErrService, height)
	}
	if len(blocks) > 1 {
		s.logger.Warn("several blocks at height, using the first",
			zap.Uint64("height", height),
			zap.Int("blocks", len(blocks)),
		)
	}
	primary := blocks[0]

	report = &model.FeeRatioReport{Height: height, BlockHash: primary.Hash}
	var tracker *analytics.RatioTracker
	switch mode {
	case RatioModeBlock:
		tracker, err = s.fromBlock(ctx, primary)
	case RatioModePerTx:
		tracker, report.Failures, err = s.perTransaction(ctx, primary)
	}
	if err != nil {
		return nil, err
	}

	report.Evaluated = tracker.Evaluated()
	report.Min, report.Max = tracker.Extremes()
	s.logger.Info("ratio extremes computed",
		zap.Uint64("height", height),
		zap.String("block", primary.Hash),
		zap.String("mode", string(mode)),
		zap.Int("evaluated", report.Evaluated),
		zap.Int("failures", len(report.Failures)),
	)
	return report, nil
}

func (s *FeeRatioService) fromBlock(ctx context.Context, summary model.BlockSummary) (*analytics.RatioTracker, error) {
	block, err := s.source.FetchRawBlock(ctx, summary.Hash)
	if err != nil {
		s.logger.Error("fetch raw block failed", zap.String("block", summary.Hash), zap.Error(err))
		return nil, fmt.Errorf("raw block %s: %w", summary.Hash, err)
	}
	for range block.Txs {
		s.metrics.ObserveRecord(nil)
	}
	return analytics.BlockRatioExtremes(*block), nil
}

func (s *FeeRatioService) perTransaction(ctx context.Context, summary model.BlockSummary) (*analytics.RatioTracker, []model.RecordFailure, error) {
	tracker := &analytics.RatioTracker{}
	failures := &failureLog{metrics: s.metrics, logger: s.logger}

	for idx, txid := range summary.TxIDs {
		if idx == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if txid == "" {
			failures.add("transaction", fmt.Sprintf("%s#%d", summary.Hash, idx), fmt.Errorf("%w: transaction without id", chain.ErrShape))
			continue
		}
		tx, err := s.source.FetchTransaction(ctx, txid)
		if err != nil {
			if aborted(ctx, err) {
				return nil, nil, err
			}
			failures.add("transaction", txid, err)
			continue
		}
		failures.ok()
		tracker.Observe(*tx)
	}
	return tracker, failures.failures, nil
}
