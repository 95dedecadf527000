package reactive

import "fmt"

// Both holds the values of two simultaneously active observables.
type Both[A, B any] struct {
	first  A
	second B
}

// NewBoth pairs first and second.
func NewBoth[A, B any](first A, second B) Both[A, B] {
	return Both[A, B]{first: first, second: second}
}

// First returns the value of the left observable.
func (b Both[A, B]) First() A { return b.first }

// Second returns the value of the right observable.
func (b Both[A, B]) Second() B { return b.second }

// Unpack returns both values at once.
func (b Both[A, B]) Unpack() (A, B) { return b.first, b.second }

func (b Both[A, B]) String() string {
	return fmt.Sprintf("Both(%v, %v)", b.first, b.second)
}
