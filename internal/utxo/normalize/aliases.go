package normalize

import (
	"strconv"
	"strings"
)

// path addresses a value inside nested JSON objects; numeric segments index arrays.
type path []string

func parsePath(s string) path {
	s = strings.ReplaceAll(s, "[", ".")
	s = strings.ReplaceAll(s, "]", "")
	return strings.Split(s, ".")
}

func paths(ss ...string) []path {
	out := make([]path, 0, len(ss))
	for _, s := range ss {
		out = append(out, parsePath(s))
	}
	return out
}

// Field names differ between blockchain.info revisions and Bitcoin Core RPC. The first
// alias present in a record wins.
var (
	txIDAliases       = paths("txid", "hash")
	inputsAliases     = paths("inputs", "vin")
	prevOutAliases    = paths("prev_out", "prevout", "prevtx", "output")
	outputsAliases    = paths("out", "outputs", "vout")
	valueAliases      = paths("value")
	addressAliases    = paths("addr", "address", "scriptPubKey.address", "scriptPubKey.addresses[0]")
	scriptAliases     = paths("script", "scriptPubKey.hex")
	spentAliases      = paths("spent")
	feeAliases        = paths("fee")
	coinbaseAliases   = paths("coinbase", "is_coinbase")
	blockHashAliases  = paths("hash")
	heightAliases     = paths("height", "block_height")
	timeAliases       = paths("time", "timestamp")
	sizeAliases       = paths("size")
	blockTxsAliases   = paths("tx", "transactions")
	blockListAliases  = paths("blocks")
	summaryTxIDFields = paths("txid", "hash")
)

// lookup returns the first value found under any of the aliases. A JSON null counts as
// absent.
func lookup(record map[string]any, aliases []path) (any, bool) {
	for _, p := range aliases {
		if v, ok := walk(record, p); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func walk(node any, p path) (any, bool) {
	cur := node
	for _, seg := range p {
		switch c := cur.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			cur = c[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
