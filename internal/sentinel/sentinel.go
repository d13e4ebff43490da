package sentinel

import "fmt"

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an immutable error type backed by a string constant.
// Error values can be declared as const, preventing reassignment, and
// compare with == so errors.Is works through wrapped chains.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

// Of returns an error formatted as "kind: specific" that matches both kind
// and specific via errors.Is. A nil specific returns kind unchanged.
func Of(kind Error, specific error) error {
	if specific == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, specific)
}
