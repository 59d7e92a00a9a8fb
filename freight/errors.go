package freight

import (
	"errors"
	"fmt"
)

// ErrInvalidInvocationTarget is returned when the engine is asked to
// call a non-function value, or to directly invoke a CapturingDef
// template without first materializing it via FunctionCapture.
var ErrInvalidInvocationTarget = errors.New("freight: cannot invoke non-function value")

// IncorrectArgumentCountError reports an arity mismatch at a call site.
// MaxOK is false when the callee is variadic (no upper bound).
type IncorrectArgumentCountError struct {
	Min    int
	Max    int
	MaxOK  bool
	Actual int
}

func (e *IncorrectArgumentCountError) Error() string {
	if !e.MaxOK {
		return fmt.Sprintf("freight: expected at least %d arguments, got %d", e.Min, e.Actual)
	}
	if e.Min == e.Max {
		return fmt.Sprintf("freight: expected %d arguments, got %d", e.Min, e.Actual)
	}
	return fmt.Sprintf("freight: expected %d to %d arguments, got %d", e.Min, e.Max, e.Actual)
}

func newArgCountError(a ArgCount, actual int) error {
	max, ok := a.Max()
	return &IncorrectArgumentCountError{Min: a.Min(), Max: max, MaxOK: ok, Actual: actual}
}

// returnSignal is the non-local return control-flow signal (spec.md
// §7): it is never meant to be observed by a caller, only caught by
// the ReturnTarget expression whose target it names. Escaping the
// owning function body with an unmatched target re-raises unchanged,
// and surfacing at the top of Call/Evaluate indicates a malformed
// expression tree (a host bug, not a user-visible error).
type returnSignal struct {
	target int
}

func (r *returnSignal) Error() string {
	return fmt.Sprintf("freight: non-local return signal for target %d escaped unmatched (malformed expression tree)", r.target)
}

// asReturnTo reports whether err is a returnSignal aimed at target.
func asReturnTo(err error, target int) bool {
	var rs *returnSignal
	if errors.As(err, &rs) {
		return rs.target == target
	}
	return false
}

// IsReturnSignal reports whether err is the internal non-local return
// control-flow signal, for hosts that want to distinguish it from a
// genuine user-visible error (e.g. in a debug assertion or test
// harness). A well-formed program never observes this from Call.
func IsReturnSignal(err error) bool {
	var rs *returnSignal
	return errors.As(err, &rs)
}
