package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Owner ties subscriptions to the lifetime of a component.
// Disposing the owner ends every subscription it holds.
type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a root owner bound to the calling goroutine.
func NewOwner() *Owner {
	return &Owner{
		internal.NewOwner(internal.NewConfinement()),
	}
}

// Child creates an owner disposed together with o.
func (o *Owner) Child() *Owner {
	child := internal.NewOwner(internal.NewConfinement())
	o.owner.AddChild(child)

	return &Owner{child}
}

// Track registers a scope to run when the owner is disposed.
// On a disposed owner the scope runs right away.
func (o *Owner) Track(scope Scope) {
	if scope == nil {
		return
	}
	o.owner.OnCleanup(scope)
}

// Dispose disposes the children, then runs the tracked scopes in reverse order.
func (o *Owner) Dispose() { o.owner.Dispose() }

// IsDisposed reports whether Dispose was called.
func (o *Owner) IsDisposed() bool { return o.owner.IsDisposed() }

// OnError adds a function called with the value of a panic caught by [Guard].
// Children without their own listener fall back to their parent's.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

// Watch subscribes observer to src for as long as owner lives.
func Watch[T any](owner *Owner, src Observable[T], observer Observer[T]) {
	owner.Track(src.Subscribe(observer))
}

// Guard wraps observer so that a panic in it or in its Scope is handed to the
// owner's error listeners instead of unwinding through the caller of Set or Reset.
// A guarded activation that panicked has no teardown.
// Without any listener the panic propagates unchanged.
func Guard[T any](owner *Owner, observer Observer[T]) Observer[T] {
	return func(v T) Scope {
		var scope Scope
		owner.owner.Guard(func() { scope = observer(v) })
		if scope == nil {
			return nil
		}

		return func() {
			owner.owner.Guard(scope)
		}
	}
}
