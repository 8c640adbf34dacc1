// Package normalize maps differently-shaped raw ledger records into the canonical model.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// Normalizer converts decoded JSON records into model values. Fields that are missing
// under every known alias become unknown rather than zero.
type Normalizer struct {
	unit    Unit
	scripts ScriptDecoder
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithScriptDecoder makes the normalizer derive output addresses from scripts when a
// record carries a script but no address.
func WithScriptDecoder(d ScriptDecoder) Option {
	return func(n *Normalizer) {
		n.scripts = d
	}
}

// New returns a Normalizer reading amounts in unit.
func New(unit Unit, opts ...Option) *Normalizer {
	n := &Normalizer{unit: unit}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Decode parses a JSON document keeping numbers exact.
func Decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", chain.ErrShape, err)
	}
	return v, nil
}

func record(raw any, what string) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, not an object", chain.ErrShape, what, raw)
	}
	return m, nil
}

// list returns the items under aliases. An absent list is empty; ok is false when the
// value is present but not a list.
func list(m map[string]any, aliases []path) (items []any, ok bool) {
	v, found := lookup(m, aliases)
	if !found {
		return nil, true
	}
	items, ok = v.([]any)
	return items, ok
}

// records is list for containers of records, where a wrong container type is a hard error.
func records(m map[string]any, aliases []path, what string) ([]any, error) {
	items, ok := list(m, aliases)
	if !ok {
		v, _ := lookup(m, aliases)
		return nil, fmt.Errorf("%w: %s is %T, not a list", chain.ErrShape, what, v)
	}
	return items, nil
}

// Output normalizes one output record.
func (n *Normalizer) Output(raw any) (model.TransactionOutput, error) {
	m, err := record(raw, "output")
	if err != nil {
		return model.TransactionOutput{}, err
	}

	out := model.TransactionOutput{}
	if v, ok := lookup(m, valueAliases); ok {
		out.Value = amount(v, n.unit)
	}
	if v, ok := lookup(m, spentAliases); ok {
		if b, ok := boolean(v); ok {
			out.Spent = model.Known(b)
		}
	}
	if v, ok := lookup(m, addressAliases); ok {
		out.Address, _ = str(v)
	}
	if out.Address == "" && n.scripts != nil {
		if v, ok := lookup(m, scriptAliases); ok {
			if script, ok := str(v); ok {
				// an undecodable script leaves the address absent
				out.Address, _ = n.scripts.DecodeAddress(script)
			}
		}
	}
	return out, nil
}

// Input normalizes one input record, including its inline previous output.
func (n *Normalizer) Input(raw any) (model.TransactionInput, error) {
	m, err := record(raw, "input")
	if err != nil {
		return model.TransactionInput{}, err
	}

	in := model.TransactionInput{}
	if v, ok := lookup(m, coinbaseAliases); ok {
		if b, isBool := v.(bool); isBool {
			in.Coinbase = b
		} else {
			in.Coinbase = true
		}
	}
	if v, ok := lookup(m, prevOutAliases); ok {
		prev, err := n.Output(v)
		if err != nil {
			prev = model.TransactionOutput{}
		}
		in.PrevOutput = &prev
	}
	return in, nil
}

// Transaction normalizes a transaction record. Only a record that is not an object fails;
// malformed inputs and outputs are kept with unknown values.
func (n *Normalizer) Transaction(raw any) (*model.Transaction, error) {
	m, err := record(raw, "transaction")
	if err != nil {
		return nil, err
	}

	tx := &model.Transaction{}
	if v, ok := lookup(m, txIDAliases); ok {
		tx.TxID, _ = str(v)
	}
	if v, ok := lookup(m, feeAliases); ok {
		tx.Fee = amount(v, n.unit)
	}

	rawInputs, ok := list(m, inputsAliases)
	if !ok {
		// one unresolved input keeps the computed fee unknown
		rawInputs = []any{nil}
	}
	tx.Inputs = make([]model.TransactionInput, 0, len(rawInputs))
	for _, rawIn := range rawInputs {
		in, err := n.Input(rawIn)
		if err != nil {
			in = model.TransactionInput{}
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	rawOutputs, ok := list(m, outputsAliases)
	if !ok {
		rawOutputs = []any{nil}
	}
	tx.Outputs = make([]model.TransactionOutput, 0, len(rawOutputs))
	for _, rawOut := range rawOutputs {
		out, err := n.Output(rawOut)
		if err != nil {
			out = model.TransactionOutput{}
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	tx.Coinbase = tx.IsCoinbase()
	return tx, nil
}

// Block normalizes a block record with full transactions. Hash, height and time are
// required; without them a block cannot be placed in a window. A transaction entry that
// is not an object stays in the block as an unresolved transaction.
func (n *Normalizer) Block(raw any) (*model.Block, error) {
	m, err := record(raw, "block")
	if err != nil {
		return nil, err
	}
	header, err := n.header(m)
	if err != nil {
		return nil, err
	}
	rawTxs, err := records(m, blockTxsAliases, "block transactions")
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", header.Hash, err)
	}
	block := &model.Block{
		Hash:      header.Hash,
		Height:    header.Height,
		Timestamp: header.Timestamp,
		Txs:       make([]model.Transaction, 0, len(rawTxs)),
	}
	if v, ok := lookup(m, sizeAliases); ok {
		if size, ok := unsigned(v); ok {
			block.Size = model.Known(size)
		}
	}
	for idx, rawTx := range rawTxs {
		tx, err := n.Transaction(rawTx)
		if err != nil {
			tx = &model.Transaction{Inputs: []model.TransactionInput{{}}}
		}
		if idx == 0 {
			tx.Coinbase = true
		}
		block.Txs = append(block.Txs, *tx)
	}
	return block, nil
}

// BlockSummary normalizes a block listing entry. Transaction entries may be ids or full
// transaction objects.
func (n *Normalizer) BlockSummary(raw any) (model.BlockSummary, error) {
	m, err := record(raw, "block summary")
	if err != nil {
		return model.BlockSummary{}, err
	}
	summary, err := n.header(m)
	if err != nil {
		return model.BlockSummary{}, err
	}
	// a malformed transaction list leaves the coinbase id unknown
	rawTxs, _ := list(m, blockTxsAliases)
	for _, rawTx := range rawTxs {
		var id string
		switch v := rawTx.(type) {
		case string:
			id = v
		case map[string]any:
			if idRaw, ok := lookup(v, summaryTxIDFields); ok {
				id, _ = str(idRaw)
			}
		}
		summary.TxIDs = append(summary.TxIDs, id)
	}
	return summary, nil
}

// BlockSummaries normalizes either a bare list of blocks or an object wrapping one
// under "blocks".
func (n *Normalizer) BlockSummaries(raw any) ([]model.BlockSummary, error) {
	items, ok := raw.([]any)
	if !ok {
		m, err := record(raw, "block listing")
		if err != nil {
			return nil, err
		}
		items, err = records(m, blockListAliases, "blocks")
		if err != nil {
			return nil, err
		}
	}
	out := make([]model.BlockSummary, 0, len(items))
	for idx, item := range items {
		s, err := n.BlockSummary(item)
		if err != nil {
			return nil, fmt.Errorf("block listing entry %d: %w", idx, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (n *Normalizer) header(m map[string]any) (model.BlockSummary, error) {
	hashRaw, _ := lookup(m, blockHashAliases)
	hash, ok := str(hashRaw)
	if !ok {
		return model.BlockSummary{}, fmt.Errorf("%w: block has no hash", chain.ErrShape)
	}
	heightRaw, ok := lookup(m, heightAliases)
	if !ok {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s has no height", chain.ErrShape, hash)
	}
	height, ok := unsigned(heightRaw)
	if !ok {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s height %v", chain.ErrShape, hash, heightRaw)
	}
	timeRaw, ok := lookup(m, timeAliases)
	if !ok {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s has no time", chain.ErrShape, hash)
	}
	seconds, ok := unsigned(timeRaw)
	if !ok || seconds > 1<<62 {
		return model.BlockSummary{}, fmt.Errorf("%w: block %s time %v", chain.ErrShape, hash, timeRaw)
	}
	return model.BlockSummary{
		Hash:      hash,
		Height:    height,
		Timestamp: time.Unix(int64(seconds), 0).UTC(),
	}, nil
}
