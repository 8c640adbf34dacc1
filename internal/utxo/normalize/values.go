package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
)

// Unit is the denomination amounts are expressed in by a provider.
type Unit int

const (
	// Satoshi amounts are integers in the smallest unit (blockchain.info).
	Satoshi Unit = iota
	// BTC amounts are decimal bitcoins (Bitcoin Core RPC).
	BTC
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// amount decodes a JSON amount in the given unit. Anything that is not a non-negative
// finite number is unknown.
func amount(raw any, unit Unit) model.Optional[uint64] {
	if unit == BTC {
		f, ok := float(raw)
		if !ok {
			return model.Unknown[uint64]()
		}
		sats, err := BtcToSatoshis(f)
		if err != nil {
			return model.Unknown[uint64]()
		}
		return model.Known(sats)
	}
	v, ok := unsigned(raw)
	if !ok {
		return model.Unknown[uint64]()
	}
	return model.Known(v)
}

// unsigned decodes a non-negative JSON integer.
func unsigned(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			u, err := safe.Uint64(i)
			return u, err == nil
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return u, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(v)
	case int:
		u, err := safe.Uint64(v)
		return u, err == nil
	case int64:
		u, err := safe.Uint64(v)
		return u, err == nil
	case uint64:
		return v, true
	default:
		return 0, false
	}
}

func integral(f float64) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

func float(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func boolean(raw any) (bool, bool) {
	b, ok := raw.(bool)
	return b, ok
}

func str(raw any) (string, bool) {
	s, ok := raw.(string)
	return s, ok && s != ""
}
