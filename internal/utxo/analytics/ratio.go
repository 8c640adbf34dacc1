package analytics

import (
	"math/big"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// RatioTracker keeps the minimum and maximum fee-to-output ratios seen so far. The first
// record wins ties.
type RatioTracker struct {
	min       *model.RatioRecord
	max       *model.RatioRecord
	evaluated int
}

// Ratio builds the ratio record of a non-coinbase transaction, if it has one.
func Ratio(tx model.Transaction) (model.RatioRecord, bool) {
	fee, ok := ComputeFee(tx)
	if !ok {
		return model.RatioRecord{}, false
	}
	total, ok := outputSum(tx)
	if !ok || total == 0 {
		return model.RatioRecord{}, false
	}
	ratio := new(big.Rat).SetFrac(new(big.Int).SetUint64(fee), new(big.Int).SetUint64(total))
	return model.RatioRecord{
		Ratio:            ratio,
		TxID:             tx.TxID,
		Fee:              fee,
		TotalOutputValue: total,
	}, true
}

// Observe folds one transaction into the extremes. Coinbase transactions and those
// without a ratio leave the tracker untouched; it reports whether tx was counted.
func (t *RatioTracker) Observe(tx model.Transaction) bool {
	if tx.IsCoinbase() {
		return false
	}
	rec, ok := Ratio(tx)
	if !ok {
		return false
	}
	t.evaluated++
	if t.min == nil || rec.Ratio.Cmp(t.min.Ratio) < 0 {
		r := rec
		t.min = &r
	}
	if t.max == nil || rec.Ratio.Cmp(t.max.Ratio) > 0 {
		r := rec
		t.max = &r
	}
	return true
}

// Extremes returns the minimum and maximum records, nil when nothing was eligible.
func (t *RatioTracker) Extremes() (minRecord, maxRecord *model.RatioRecord) {
	return t.min, t.max
}

// Evaluated returns how many transactions produced a ratio.
func (t *RatioTracker) Evaluated() int {
	return t.evaluated
}

// BlockRatioExtremes folds the non-coinbase transactions of a block, skipping index 0.
func BlockRatioExtremes(block model.Block) *RatioTracker {
	tracker := &RatioTracker{}
	for i, tx := range block.Txs {
		if i == 0 {
			continue
		}
		tracker.Observe(tx)
	}
	return tracker
}
