// Package chain defines interfaces and structs shared between ledger analytics components.
package chain

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// LedgerSource provides read access to blocks and transactions of a public ledger.
// Every call is a single blocking attempt; pacing is the implementation's concern.
type LedgerSource interface {
	// FetchBlocksAtHeight lists the blocks recorded at height. More than one block is
	// returned on a fork; none when the height is unknown to the provider.
	FetchBlocksAtHeight(ctx context.Context, height uint64) ([]model.BlockSummary, error)
	// FetchTransaction returns a transaction with resolved previous outputs where the
	// provider knows them.
	FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error)
	// FetchBlocksByTimestamp lists blocks mined on the calendar day containing at.
	FetchBlocksByTimestamp(ctx context.Context, at time.Time) ([]model.BlockSummary, error)
	// FetchRawBlock returns a block with full transaction detail.
	FetchRawBlock(ctx context.Context, hash string) (*model.Block, error)
}
