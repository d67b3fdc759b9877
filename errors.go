package ggscript

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by a render pass.
var (
	// ErrStateStackUnderflow is returned when pop_state has no matching
	// push_state.
	ErrStateStackUnderflow = errors.New("ggscript: state stack underflow")

	// ErrStateStackImbalance is returned when a script ends with states
	// still pushed. The backend has been unwound when it is reported.
	ErrStateStackImbalance = errors.New("ggscript: state stack imbalance")

	// ErrNonFinite is returned when an opcode carries a NaN or infinite
	// number.
	ErrNonFinite = errors.New("ggscript: non-finite argument")

	// ErrNoBackend is returned when an Interpreter has no backend.
	ErrNoBackend = errors.New("ggscript: no backend")
)

// OpError records the opcode that stopped a render pass.
type OpError struct {
	Index int    // position of the opcode in the script
	Op    OpType // opcode type
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("ggscript: op %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
