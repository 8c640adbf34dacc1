package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/analytics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"go.uber.org/zap"
)

// ScanRequest is an inclusive height range to scan for spent coinbases.
type ScanRequest struct {
	From  uint64
	To    uint64
	Pause time.Duration
	// OnHeight is called after each height, whether or not it produced a failure.
	OnHeight func(height uint64)
}

// CoinbaseScannerService finds blocks whose coinbase outputs have been spent.
type CoinbaseScannerService struct {
	source  LedgerSource
	metrics AnalyzerMetrics
	sleep   func(context.Context, time.Duration) error
	logger  *zap.Logger
}

func NewCoinbaseScannerService(
	source LedgerSource,
	metrics AnalyzerMetrics,
	network model.Network,
	logger *zap.Logger,
) (*CoinbaseScannerService, error) {
	if source == nil {
		return nil, errors.New("ledger source is required")
	}
	if metrics == nil {
		return nil, errors.New("coinbase scanner metrics is required")
	}
	return &CoinbaseScannerService{
		source:  source,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
		logger: logger.Named("coinbaseScanner").With(
			zap.String("network", string(network)),
		),
	}, nil
}

// Scan checks the coinbase of every block at every height of the range. Failed
// heights and transactions are reported and skipped; cancellation ends the scan with
// the partial report.
func (s *CoinbaseScannerService) Scan(ctx context.Context, req ScanRequest) (report *model.CoinbaseScanReport, err error) {
	if req.From > req.To {
		return nil, fmt.Errorf("%w: height range %d..%d is inverted", chain.ErrValidation, req.From, req.To)
	}

	started := time.Now()
	defer func() {
		s.metrics.ObserveRun(err, started)
	}()

	report = &model.CoinbaseScanReport{FromHeight: req.From, ToHeight: req.To}
	failures := &failureLog{metrics: s.metrics, logger: s.logger}
	defer func() {
		report.Failures = failures.failures
	}()

	s.logger.Info("scan started", zap.Uint64("from", req.From), zap.Uint64("to", req.To))
	for height := req.From; ; height++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.scanHeight(ctx, height, report, failures); err != nil {
			return report, err
		}
		if req.OnHeight != nil {
			req.OnHeight(height)
		}
		if height == req.To {
			break
		}
		if req.Pause > 0 {
			if err := s.sleep(ctx, req.Pause); err != nil {
				return report, err
			}
		}
	}

	s.logger.Info("scan finished",
		zap.Int("checked", report.Checked),
		zap.Int("spent", len(report.Spent)),
		zap.Int("failures", len(failures.failures)),
	)
	return report, nil
}

func (s *CoinbaseScannerService) scanHeight(ctx context.Context, height uint64, report *model.CoinbaseScanReport, failures *failureLog) error {
	key := strconv.FormatUint(height, 10)
	blocks, err := s.source.FetchBlocksAtHeight(ctx, height)
	if err != nil {
		if aborted(ctx, err) {
			return err
		}
		failures.add("blocks_at_height", key, err)
		return nil
	}
	if len(blocks) == 0 {
		failures.add("blocks_at_height", key, fmt.Errorf("%w: no block at height %d", chain.ErrService, height))
		return nil
	}

	for _, block := range blocks {
		txid, ok := block.CoinbaseTxID()
		if !ok {
			failures.add("coinbase_txid", block.Hash, fmt.Errorf("%w: block %s lists no coinbase", chain.ErrShape, block.Hash))
			continue
		}
		tx, err := s.source.FetchTransaction(ctx, txid)
		if err != nil {
			if aborted(ctx, err) {
				return err
			}
			failures.add("transaction", txid, err)
			continue
		}
		failures.ok()
		report.Checked++

		if analytics.IsSpent(*tx) {
			report.Spent = append(report.Spent, model.SpentCoinbase{
				Height:       height,
				BlockHash:    block.Hash,
				CoinbaseTxID: txid,
			})
			s.logger.Info("spent coinbase",
				zap.Uint64("height", height),
				zap.String("block", block.Hash),
				zap.String("txid", txid),
			)
		}
	}
	return nil
}
