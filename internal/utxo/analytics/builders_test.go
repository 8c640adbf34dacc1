package analytics

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

func output(addr string, value uint64) model.TransactionOutput {
	return model.TransactionOutput{Address: addr, Value: model.Known(value)}
}

func input(addr string, value uint64) model.TransactionInput {
	prev := output(addr, value)
	return model.TransactionInput{PrevOutput: &prev}
}

func unresolvedInput() model.TransactionInput {
	return model.TransactionInput{}
}

func transfer(id string, ins []model.TransactionInput, outs ...model.TransactionOutput) model.Transaction {
	return model.Transaction{TxID: id, Inputs: ins, Outputs: outs}
}

func coinbase(id, addr string) model.Transaction {
	return model.Transaction{
		TxID:     id,
		Inputs:   []model.TransactionInput{{Coinbase: true}},
		Outputs:  []model.TransactionOutput{output(addr, 625_000_000)},
		Coinbase: true,
	}
}

// paying returns a one-in one-out transaction that pays fee on top of value.
func paying(id string, value, fee uint64) model.Transaction {
	return transfer(id, []model.TransactionInput{input("1Payer", value+fee)}, output("1Payee", value))
}

var windowStart = time.Unix(1_700_000_000, 0).UTC()

func block(height uint64, hash, miner string, txs ...model.Transaction) model.Block {
	all := append([]model.Transaction{coinbase(fmt.Sprintf("cb-%d", height), miner)}, txs...)
	return model.Block{
		Hash:      hash,
		Height:    height,
		Timestamp: windowStart.Add(time.Duration(height) * 10 * time.Minute),
		Size:      model.Known(1000 + height),
		Txs:       all,
	}
}
