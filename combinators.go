package reactive

// Map derives an observable active whenever src is, holding f of its value.
func Map[T, U any](src Observable[T], f func(T) U) Observable[U] {
	return &observable[U]{func(observer Observer[U]) Scope {
		return src.Subscribe(func(v T) Scope {
			return observer(f(v))
		})
	}}
}

// Filter derives an observable active while src is active with a value matching pred.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return &observable[T]{func(observer Observer[T]) Scope {
		return src.Subscribe(func(v T) Scope {
			if !pred(v) {
				return nil
			}
			return observer(v)
		})
	}}
}

// And derives an observable active while both a and b are active.
//
// a is subscribed first and b is subscribed from within each activation of a,
// so teardown of the joint activation always happens before a's own teardown.
func And[A, B any](a Observable[A], b Observable[B]) Observable[Both[A, B]] {
	return &observable[Both[A, B]]{func(observer Observer[Both[A, B]]) Scope {
		return a.Subscribe(func(x A) Scope {
			return b.Subscribe(func(y B) Scope {
				return observer(NewBoth(x, y))
			})
		})
	}}
}

// AndThen derives an observable that activates when b activates while a is
// already active. If b was active first, the result stays inactive until b
// activates again. It deactivates as soon as either side does.
//
// Unlike the other combinators, AndThen tracks the order of activations from
// the moment it is called, so it must be called on the goroutine owning a and b.
// The returned Scope stops the tracking and deactivates the result.
func AndThen[A, B any](a Observable[A], b Observable[B]) (Observable[Both[A, B]], Scope) {
	joint := NewController[Both[A, B]]()

	stop := a.Subscribe(func(x A) Scope {
		armed := false
		unsubscribe := b.Subscribe(func(y B) Scope {
			if !armed {
				return nil
			}

			joint.Set(NewBoth(x, y))
			return joint.Reset
		})
		armed = true

		return unsubscribe
	})

	return joint.ReadOnly(), stop
}

// Not derives an observable active, with Unit, exactly while src is inactive.
func Not[T any](src Observable[T]) Observable[Unit] {
	return &observable[Unit]{func(observer Observer[Unit]) Scope {
		inverse := NewController[Unit]()
		inverse.Set(Unit{})

		unsubscribeSrc := src.Subscribe(func(T) Scope {
			inverse.Reset()
			return func() { inverse.Set(Unit{}) }
		})
		unsubscribe := inverse.Subscribe(observer)

		return func() {
			unsubscribe()
			unsubscribeSrc()
		}
	}}
}

// Or derives an observable active, with Unit, while a or b (or both) are active.
func Or[A, B any](a Observable[A], b Observable[B]) Observable[Unit] {
	return &observable[Unit]{func(observer Observer[Unit]) Scope {
		either := NewController[Unit]()
		count := 0

		enter := func() Scope {
			count++
			either.Set(Unit{})

			return func() {
				count--
				if count == 0 {
					either.Reset()
				}
			}
		}

		unsubscribeA := a.Subscribe(func(A) Scope { return enter() })
		unsubscribeB := b.Subscribe(func(B) Scope { return enter() })
		unsubscribe := either.Subscribe(observer)

		return func() {
			unsubscribe()
			unsubscribeB()
			unsubscribeA()
		}
	}}
}
