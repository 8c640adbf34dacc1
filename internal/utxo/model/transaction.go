package model

// Transaction is the canonical transaction shape produced by the normalizer.
type Transaction struct {
	TxID     string
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
	Fee      Optional[uint64]
	Coinbase bool
}

// IsCoinbase reports whether the transaction is a generation transaction: either flagged
// as such by its block position, without inputs, or with a single generation input that
// has no previous output.
func (t Transaction) IsCoinbase() bool {
	if t.Coinbase || len(t.Inputs) == 0 {
		return true
	}
	return len(t.Inputs) == 1 && t.Inputs[0].Coinbase && t.Inputs[0].PrevOutput == nil
}

// InvolvesAddress reports whether addr receives an output of the transaction or funds one
// of its inputs.
func (t Transaction) InvolvesAddress(addr string) bool {
	if addr == "" {
		return false
	}
	for _, out := range t.Outputs {
		if out.Address == addr {
			return true
		}
	}
	for _, in := range t.Inputs {
		if in.PrevOutput != nil && in.PrevOutput.Address == addr {
			return true
		}
	}
	return false
}

// TransactionInput references the output it consumes. PrevOutput is nil when the record
// did not carry one or it could not be resolved.
type TransactionInput struct {
	PrevOutput *TransactionOutput
	Coinbase   bool
}

// PrevValue returns the value of the consumed output when it is known.
func (i TransactionInput) PrevValue() (uint64, bool) {
	if i.PrevOutput == nil {
		return 0, false
	}
	return i.PrevOutput.Value.Get()
}

// TransactionOutput represents an output produced by a transaction.
type TransactionOutput struct {
	Address string
	Value   Optional[uint64]
	Spent   Optional[bool]
}
