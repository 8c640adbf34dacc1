// Package safe provides overflow-checked numeric conversions and accumulation for
// satoshi amounts and ledger counters.
package safe

import (
	"fmt"
	"math"
)

type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// magnitude splits v into its sign and absolute value.
func magnitude[T integer](v T) (negative bool, abs uint64, err error) {
	switch value := any(v).(type) {
	case int:
		return value < 0, uint64(abs64(int64(value))), nil
	case int32:
		return value < 0, uint64(abs64(int64(value))), nil
	case int64:
		return value < 0, uint64(abs64(value)), nil
	case uint:
		return false, uint64(value), nil
	case uint32:
		return false, uint64(value), nil
	case uint64:
		return false, value, nil
	default:
		return false, 0, fmt.Errorf("unsupported type %T", v)
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T integer](v T) (uint32, error) {
	negative, abs, err := magnitude(v)
	if err != nil {
		return 0, err
	}
	if negative || abs > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(abs), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T integer](v T) (uint64, error) {
	negative, abs, err := magnitude(v)
	if err != nil {
		return 0, err
	}
	if negative {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return abs, nil
}
