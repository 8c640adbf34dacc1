// Package analytics derives fee, ratio and window statistics from normalized ledger records.
// Every function here is a pure fold over its input.
package analytics

import (
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
)

// ComputeFee returns the fee paid by a non-coinbase transaction. An authoritative positive
// fee wins; otherwise the fee is inputs minus outputs, known only when every input value
// is known and the difference is positive. Callers skip coinbase transactions.
func ComputeFee(tx model.Transaction) (uint64, bool) {
	if fee, ok := tx.Fee.Get(); ok && fee > 0 {
		return fee, true
	}

	var in uint64
	for _, input := range tx.Inputs {
		v, ok := input.PrevValue()
		if !ok {
			return 0, false
		}
		sum, err := safe.Add(in, v)
		if err != nil {
			return 0, false
		}
		in = sum
	}

	out, ok := outputSum(tx)
	if !ok || in <= out {
		return 0, false
	}
	return in - out, true
}

func outputSum(tx model.Transaction) (uint64, bool) {
	var total uint64
	for _, output := range tx.Outputs {
		sum, err := safe.Add(total, output.Value.OrZero())
		if err != nil {
			return 0, false
		}
		total = sum
	}
	return total, true
}

// LumpFee returns max(0, Σ resolvable input values − Σ output values) over the non-coinbase
// transactions of a block. Unresolved inputs are left out of the sum instead of making the
// whole block unknown.
func LumpFee(block model.Block) uint64 {
	var in, out uint64
	for i, tx := range block.Txs {
		if i == 0 || tx.IsCoinbase() {
			continue
		}
		for _, input := range tx.Inputs {
			if v, ok := input.PrevValue(); ok {
				in = saturatingAdd(in, v)
			}
		}
		for _, output := range tx.Outputs {
			out = saturatingAdd(out, output.Value.OrZero())
		}
	}
	return safe.Diff(in, out)
}

func saturatingAdd(a, b uint64) uint64 {
	sum, err := safe.Add(a, b)
	if err != nil {
		return ^uint64(0)
	}
	return sum
}
