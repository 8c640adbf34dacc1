package model

// Optional carries a value that a ledger record may not have provided.
// The zero Optional is unknown.
type Optional[T any] struct {
	value T
	known bool
}

// Known wraps a value that was present in the source record.
func Known[T any](v T) Optional[T] {
	return Optional[T]{value: v, known: true}
}

// Unknown returns an Optional with no value.
func Unknown[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is known.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.known
}

// IsKnown reports whether the value was present.
func (o Optional[T]) IsKnown() bool {
	return o.known
}

// OrZero returns the value, or the zero value when unknown.
func (o Optional[T]) OrZero() T {
	return o.value
}
