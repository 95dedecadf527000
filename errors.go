package reactive

import "github.com/AnatoleLucet/reactive/internal"

// ErrWrongGoroutine is wrapped by every [ConfinementError].
var ErrWrongGoroutine = internal.ErrWrongGoroutine

// ConfinementError is the panic value raised when a controller, registry or
// owner is used from a goroutine other than the one that created it.
type ConfinementError = internal.ConfinementError
