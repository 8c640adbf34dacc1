package analyzer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/analytics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"go.uber.org/zap"
)

// ParseDay parses a YYYY-MM-DD date as UTC midnight.
func ParseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", chain.ErrValidation, s, err)
	}
	return day, nil
}

// WindowService aggregates the first blocks mined on a calendar day.
type WindowService struct {
	source  LedgerSource
	metrics AnalyzerMetrics
	logger  *zap.Logger
}

func NewWindowService(
	source LedgerSource,
	metrics AnalyzerMetrics,
	network model.Network,
	logger *zap.Logger,
) (*WindowService, error) {
	if source == nil {
		return nil, errors.New("ledger source is required")
	}
	if metrics == nil {
		return nil, errors.New("window metrics is required")
	}
	return &WindowService{
		source:  source,
		metrics: metrics,
		logger: logger.Named("window").With(
			zap.String("network", string(network)),
		),
	}, nil
}

// Analyze takes the lowest-height blocks of the UTC day containing day, up to the
// window size, and aggregates them. A short day is analyzed as is; a day without
// blocks or a block that cannot be read aborts the run.
func (s *WindowService) Analyze(ctx context.Context, day time.Time) (report *model.WindowReport, err error) {
	day = day.UTC().Truncate(24 * time.Hour)

	started := time.Now()
	defer func() {
		s.metrics.ObserveRun(err, started)
	}()

	summaries, err := s.source.FetchBlocksByTimestamp(ctx, day)
	if err != nil {
		s.logger.Error("fetch day blocks failed", zap.Time("day", day), zap.Error(err))
		return nil, fmt.Errorf("blocks on %s: %w", day.Format(DayLayout), err)
	}
	window := windowOf(summaries)
	if len(window) == 0 {
		return nil, fmt.Errorf("%w: no blocks on %s", chain.ErrService, day.Format(DayLayout))
	}
	if len(window) < analytics.WindowSize {
		s.logger.Warn("short window",
			zap.Time("day", day),
			zap.Int("blocks", len(window)),
			zap.Int("want", analytics.WindowSize),
		)
	}

	blocks := make([]model.Block, 0, len(window))
	heights := make([]uint64, 0, len(window))
	for _, summary := range window {
		block, err := s.source.FetchRawBlock(ctx, summary.Hash)
		if err != nil {
			s.metrics.ObserveRecord(err)
			s.logger.Error("fetch window block failed",
				zap.Uint64("height", summary.Height),
				zap.String("block", summary.Hash),
				zap.Error(err),
			)
			return nil, fmt.Errorf("window block %s at height %d: %w", summary.Hash, summary.Height, err)
		}
		s.metrics.ObserveRecord(nil)
		blocks = append(blocks, *block)
		heights = append(heights, block.Height)
	}

	report = &model.WindowReport{
		Day:     day,
		Heights: heights,
		Stats:   analytics.AggregateWindow(blocks),
		Miners:  analytics.AttributeMiners(blocks),
	}
	s.logger.Info("window aggregated",
		zap.Time("day", day),
		zap.Int("blocks", report.Stats.Blocks),
		zap.Int("transactions", report.Stats.TotalTransactions),
	)
	return report, nil
}

// windowOf orders the listing by height and keeps the first WindowSize entries. Listings
// may carry several blocks at one height; the first listed wins.
func windowOf(summaries []model.BlockSummary) []model.BlockSummary {
	sorted := slices.Clone(summaries)
	slices.SortStableFunc(sorted, func(a, b model.BlockSummary) int {
		return cmp.Compare(a.Height, b.Height)
	})
	sorted = slices.CompactFunc(sorted, func(a, b model.BlockSummary) bool {
		return a.Height == b.Height
	})
	if len(sorted) > analytics.WindowSize {
		sorted = sorted[:analytics.WindowSize]
	}
	return sorted
}
