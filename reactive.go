// Package reactive is a small single-goroutine activation algebra.
//
// An [Observable] is, at any instant, either inactive or active with exactly
// one value. [Controller] is the writable root cell; combinators such as
// [And], [AndThen], [Not] and [Map] derive new Observables from existing ones.
// Subscribing an [Observer] runs it on every activation, and the [Scope] it
// returns is run exactly once when that activation ends.
//
// Every operation runs synchronously on the calling goroutine. A Controller
// is bound to the goroutine that created it and panics with a
// [*ConfinementError] when used from another one.
package reactive

// Unit is the payload of conditions that carry no information.
type Unit struct{}

// Scope tears down an activation. A nil Scope does nothing.
type Scope func()

// Run the scope if it is not nil.
func (s Scope) Run() {
	if s != nil {
		s()
	}
}

// Then returns a Scope running s and then next.
func (s Scope) Then(next Scope) Scope {
	if s == nil {
		return next
	}
	if next == nil {
		return s
	}

	return func() {
		s()
		next()
	}
}

// Observer is called with the value of each activation and returns the
// Scope that undoes it.
type Observer[T any] func(T) Scope

// Observable is a condition that can be watched for activations.
type Observable[T any] interface {
	// Subscribe registers the observer. If the observable is already active,
	// the observer is called before Subscribe returns.
	// The returned Scope ends the subscription, running the observer's live Scope if any.
	Subscribe(observer Observer[T]) Scope

	// IsActive reports whether the observable currently holds a value.
	IsActive() bool
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// observable is an Observable defined by its subscribe function.
type observable[T any] struct {
	subscribe func(Observer[T]) Scope
}

func (o *observable[T]) Subscribe(observer Observer[T]) Scope {
	return o.subscribe(observer)
}

func (o *observable[T]) IsActive() bool {
	return peek[T](o)
}

// peek subscribes and unsubscribes right away, reporting whether an activation happened.
func peek[T any](o Observable[T]) bool {
	active := false
	o.Subscribe(func(T) Scope {
		active = true
		return nil
	}).Run()

	return active
}
