//go:build !wasm

package internal

import (
	"github.com/petermattis/goid"
)

// Confinement binds a reactive node to the goroutine that created it.
type Confinement struct {
	owner int64
}

func NewConfinement() *Confinement {
	return &Confinement{owner: getGID()}
}

// Check panics with a *ConfinementError when called from a goroutine
// other than the owner. A nil Confinement never panics.
func (c *Confinement) Check(op string) {
	if c == nil {
		return
	}

	if gid := getGID(); gid != c.owner {
		panic(&ConfinementError{Op: op, Owner: c.owner, Caller: gid})
	}
}

func getGID() int64 {
	return goid.Get()
}
