package analyzer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	LedgerSource interface {
		FetchBlocksAtHeight(ctx context.Context, height uint64) ([]model.BlockSummary, error)
		FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error)
		FetchBlocksByTimestamp(ctx context.Context, at time.Time) ([]model.BlockSummary, error)
		FetchRawBlock(ctx context.Context, hash string) (*model.Block, error)
	}
	AnalyzerMetrics interface {
		ObserveRun(err error, started time.Time)
		ObserveRecord(err error)
	}
)
