// Package model defines domain models for UTXO ledger analytics.
package model

import "time"

// Block represents a block with full transaction detail, coinbase first.
type Block struct {
	Hash      string
	Height    uint64
	Timestamp time.Time
	Size      Optional[uint64]
	Txs       []Transaction
}

// TxCount returns the number of transactions in the block.
func (b Block) TxCount() int {
	return len(b.Txs)
}

// BlockSummary is the lightweight block listing returned by height and day lookups.
type BlockSummary struct {
	Hash      string
	Height    uint64
	Timestamp time.Time
	TxIDs     []string
}

// CoinbaseTxID returns the first listed transaction id, which is the coinbase by construction.
func (s BlockSummary) CoinbaseTxID() (string, bool) {
	if len(s.TxIDs) == 0 || s.TxIDs[0] == "" {
		return "", false
	}
	return s.TxIDs[0], true
}
