package safe

import (
	"errors"
	"math/bits"
)

// ErrOverflow is returned when an accumulation exceeds the uint64 range.
var ErrOverflow = errors.New("uint64 overflow")

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Diff returns a-b clamped at zero.
func Diff(a, b uint64) uint64 {
	if a <= b {
		return 0
	}
	return a - b
}
