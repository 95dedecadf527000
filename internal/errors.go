package internal

import (
	"errors"
	"fmt"
)

var ErrWrongGoroutine = errors.New("reactive node used outside of its owner goroutine")

// ConfinementError reports a reactive node being used from a goroutine
// other than the one that created it.
type ConfinementError struct {
	// Op is the rejected operation (e.g. "Set", "Subscribe").
	Op string
	// Owner is the id of the goroutine the node is bound to.
	Owner int64
	// Caller is the id of the offending goroutine.
	Caller int64
}

func (e *ConfinementError) Error() string {
	return fmt.Sprintf("%s: %v (owner=%d caller=%d)", e.Op, ErrWrongGoroutine, e.Owner, e.Caller)
}

func (e *ConfinementError) Unwrap() error {
	return ErrWrongGoroutine
}
