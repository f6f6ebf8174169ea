package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned, wrapped in an [InputError], when a
// simulation is requested with parameters it cannot run with.
var ErrInvalidInput = errors.New("sim: invalid input")

// InputError names the offending parameter.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("sim: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
