package analytics

import (
	"math"
	"testing"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name   string
		tx     model.Transaction
		want   uint64
		wantOK bool
	}{
		{
			name:   "inputs minus outputs",
			tx:     transfer("a", []model.TransactionInput{input("x", 7000), input("y", 3000)}, output("z", 9000)),
			want:   1000,
			wantOK: true,
		},
		{
			name: "authoritative fee wins",
			tx: func() model.Transaction {
				tx := transfer("b", []model.TransactionInput{input("x", 7000)}, output("z", 6000))
				tx.Fee = model.Known(uint64(250))
				return tx
			}(),
			want:   250,
			wantOK: true,
		},
		{
			name: "zero authoritative fee falls back to sums",
			tx: func() model.Transaction {
				tx := transfer("c", []model.TransactionInput{input("x", 7000)}, output("z", 6000))
				tx.Fee = model.Known(uint64(0))
				return tx
			}(),
			want:   1000,
			wantOK: true,
		},
		{
			name: "unresolved input is unknown, not zero",
			tx:   transfer("d", []model.TransactionInput{input("x", 7000), unresolvedInput()}, output("z", 6000)),
		},
		{
			name: "input without value is unknown",
			tx: transfer("e", []model.TransactionInput{
				input("x", 7000),
				{PrevOutput: &model.TransactionOutput{Address: "y"}},
			}, output("z", 1)),
		},
		{
			name: "missing output value counts as zero",
			tx: transfer("f", []model.TransactionInput{input("x", 7000)},
				output("z", 6000), model.TransactionOutput{Address: "w"}),
			want:   1000,
			wantOK: true,
		},
		{
			name: "zero difference is unknown",
			tx:   transfer("g", []model.TransactionInput{input("x", 6000)}, output("z", 6000)),
		},
		{
			name: "negative difference is unknown",
			tx:   transfer("h", []model.TransactionInput{input("x", 5000)}, output("z", 6000)),
		},
		{
			name: "overflowing inputs are unknown",
			tx:   transfer("i", []model.TransactionInput{input("x", math.MaxUint64), input("y", 1)}, output("z", 1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeFee(tt.tx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFee_MatchesSumsWhenAllKnown(t *testing.T) {
	cases := []struct{ ins, outs []uint64 }{
		{ins: []uint64{100}, outs: []uint64{40, 50}},
		{ins: []uint64{1, 2, 3}, outs: []uint64{6}},
		{ins: []uint64{10, 20}, outs: []uint64{31}},
		{ins: []uint64{5_000_000_000}, outs: []uint64{}},
	}
	for _, c := range cases {
		tx := model.Transaction{}
		var in, out int64
		for _, v := range c.ins {
			tx.Inputs = append(tx.Inputs, input("a", v))
			in += int64(v)
		}
		for _, v := range c.outs {
			tx.Outputs = append(tx.Outputs, output("b", v))
			out += int64(v)
		}

		got, ok := ComputeFee(tx)
		if diff := in - out; diff > 0 {
			assert.True(t, ok)
			assert.Equal(t, uint64(diff), got)
		} else {
			assert.False(t, ok)
		}
	}
}

func TestLumpFee(t *testing.T) {
	b := block(1, "h", "1Miner",
		paying("t1", 1000, 100),
		transfer("t2", []model.TransactionInput{unresolvedInput()}, output("z", 50)),
		paying("t3", 2000, 300),
	)
	// 1100 + 2300 in, 1000 + 50 + 2000 out
	assert.Equal(t, uint64(350), LumpFee(b))

	negative := block(2, "h2", "1Miner",
		transfer("t4", []model.TransactionInput{unresolvedInput()}, output("z", 5000)),
	)
	assert.Equal(t, uint64(0), LumpFee(negative), "negative lump sums clamp to zero")

	coinbaseOnly := block(3, "h3", "1Miner")
	assert.Equal(t, uint64(0), LumpFee(coinbaseOnly))
}

func TestIsSpent(t *testing.T) {
	tests := []struct {
		name    string
		outputs []model.TransactionOutput
		want    bool
	}{
		{
			name:    "one spent output",
			outputs: []model.TransactionOutput{{Spent: model.Known(false)}, {Spent: model.Known(true)}},
			want:    true,
		},
		{
			name:    "unspent",
			outputs: []model.TransactionOutput{{Spent: model.Known(false)}},
		},
		{
			name:    "unknown flag counts as unspent",
			outputs: []model.TransactionOutput{{}},
		},
		{
			name: "no outputs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSpent(model.Transaction{Outputs: tt.outputs}))
		})
	}
}
