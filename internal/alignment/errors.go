package alignment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol is matched by every *InvalidSymbolError.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrEmptyInput is returned when an operation receives no sequences or rows at all.
	// A single empty sequence is valid input.
	ErrEmptyInput = errors.New("no sequences given")

	// ErrLengthMismatch reports rows of a multiple alignment diverging in length.
	// It signals a bug in the merge step, never a usage error.
	ErrLengthMismatch = errors.New("aligned rows differ in length")

	// ErrRaggedRows is returned when caller-supplied alignment rows differ in length.
	ErrRaggedRows = errors.New("alignment rows must have equal length")
)

// InvalidSymbolError is returned when a sequence contains a symbol outside
// the alphabet of a scoring model.
type InvalidSymbolError struct {
	Symbol byte
	// Position is the offset in the offending input, or -1 when unknown.
	Position int
	// Input is the index of the offending sequence in the call, or -1.
	Input int
}

func (e *InvalidSymbolError) Error() string {
	switch {
	case e.Position < 0:
		return fmt.Sprintf("invalid symbol '%c'", e.Symbol)
	case e.Input < 0:
		return fmt.Sprintf("invalid symbol '%c' at position %d", e.Symbol, e.Position)
	default:
		return fmt.Sprintf("invalid symbol '%c' at position %d of sequence %d", e.Symbol, e.Position, e.Input+1)
	}
}

// Is makes errors.Is(err, ErrInvalidSymbol) hold.
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

func newInvalidSymbol(c byte) *InvalidSymbolError {
	return &InvalidSymbolError{Symbol: c, Position: -1, Input: -1}
}
