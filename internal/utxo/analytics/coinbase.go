package analytics

import "github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"

// IsSpent reports whether any output of tx is known to be spent. Unknown spent flags
// count as unspent.
func IsSpent(tx model.Transaction) bool {
	for _, out := range tx.Outputs {
		if spent, ok := out.Spent.Get(); ok && spent {
			return true
		}
	}
	return false
}
