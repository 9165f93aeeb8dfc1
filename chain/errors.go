package chain

import (
	"errors"
	"fmt"
)

// ErrMissingBinding is matched (errors.Is) by every MissingBindingError.
var ErrMissingBinding = errors.New("missing binding")

// ErrNotSequence is returned by ProducedOutputs when several output names are
// declared but the action returned something that is not a slice or array.
var ErrNotSequence = errors.New("output is not a sequence")

// MissingBindingError reports a name absent from the shared store.
type MissingBindingError struct {
	Name string
}

func (e *MissingBindingError) Error() string { return fmt.Sprintf("missing binding %q", e.Name) }

func (e *MissingBindingError) Is(target error) bool { return target == ErrMissingBinding }

// IsMissingBinding reports whether err is (or wraps) a MissingBindingError.
func IsMissingBinding(err error) bool { return errors.Is(err, ErrMissingBinding) }

// OutputArityError is returned when an action's return value does not have as
// many elements as it has declared output names.
type OutputArityError struct {
	Action string
	Got    int
	Want   int
}

func (e *OutputArityError) Error() string {
	return fmt.Sprintf("output length is %d while a length of %d was expected", e.Got, e.Want)
}

// PanicError carries a value recovered from a panicking action or hook.
type PanicError struct {
	Action string
	Value  any
}

func (e *PanicError) Error() string { return fmt.Sprintf("%s: panic: %v", e.Action, e.Value) }

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
