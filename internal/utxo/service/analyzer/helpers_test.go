package analyzer

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

func out(addr string, value uint64) model.TransactionOutput {
	return model.TransactionOutput{Address: addr, Value: model.Known(value)}
}

func coinbaseTx(id, miner string, spent model.Optional[bool]) *model.Transaction {
	o := out(miner, 5_000_000_000)
	o.Spent = spent
	return &model.Transaction{
		TxID:     id,
		Inputs:   []model.TransactionInput{{Coinbase: true}},
		Outputs:  []model.TransactionOutput{o},
		Coinbase: true,
	}
}

// payingTx spends value+fee into a single output of value.
func payingTx(id string, value, fee uint64) *model.Transaction {
	prev := out("1Payer", value+fee)
	return &model.Transaction{
		TxID:    id,
		Inputs:  []model.TransactionInput{{PrevOutput: &prev}},
		Outputs: []model.TransactionOutput{out("1Payee", value)},
	}
}

var dayStart = time.Date(2015, time.March, 1, 0, 0, 0, 0, time.UTC)

func rawBlock(height uint64, miner string, txs ...*model.Transaction) *model.Block {
	all := []model.Transaction{*coinbaseTx(fmt.Sprintf("cb-%d", height), miner, model.Unknown[bool]())}
	for _, tx := range txs {
		all = append(all, *tx)
	}
	return &model.Block{
		Hash:      blockHash(height),
		Height:    height,
		Timestamp: dayStart.Add(time.Duration(height-100) * 10 * time.Minute),
		Size:      model.Known(uint64(1000)),
		Txs:       all,
	}
}

func blockHash(height uint64) string {
	return fmt.Sprintf("%064x", 0xff00-height)
}

func summary(height uint64) model.BlockSummary {
	return model.BlockSummary{
		Hash:      blockHash(height),
		Height:    height,
		Timestamp: dayStart.Add(time.Duration(height-100) * 10 * time.Minute),
	}
}
