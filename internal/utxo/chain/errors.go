package chain

import "errors"

var (
	// ErrService marks a ledger service call that failed or returned no usable data.
	ErrService = errors.New("ledger service error")
	// ErrShape marks a ledger record that lacks a structurally required part.
	ErrShape = errors.New("malformed ledger record")
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("invalid input")
)
