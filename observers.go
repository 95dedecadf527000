package reactive

// OnEnter adapts fn into an observer with no teardown.
func OnEnter[T any](fn func(T)) Observer[T] {
	return func(v T) Scope {
		fn(v)
		return nil
	}
}

// OnExit adapts fn into an observer that only acts when the activation ends.
func OnExit[T any](fn func(T)) Observer[T] {
	return func(v T) Scope {
		return func() { fn(v) }
	}
}

// BothObserver unpacks the pair produced by [And] and [AndThen].
func BothObserver[A, B any](fn func(A, B) Scope) Observer[Both[A, B]] {
	return func(both Both[A, B]) Scope {
		return fn(both.first, both.second)
	}
}
