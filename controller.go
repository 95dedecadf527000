package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Controller is the writable root of a reactive graph.
// It starts inactive; Set activates it and Reset deactivates it.
type Controller[T any] struct {
	cell *internal.Cell
}

type controllerConfig struct {
	equal      func(a, b any) bool
	unconfined bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

// WithEqual replaces the equality used to drop repeated Set calls.
func WithEqual[T any](equal func(a, b T) bool) ControllerOption {
	return func(c *controllerConfig) {
		c.equal = func(a, b any) bool {
			return equal(as[T](a), as[T](b))
		}
	}
}

// Unconfined disables the owner goroutine check.
// The caller is then responsible for serializing every access.
func Unconfined() ControllerOption {
	return func(c *controllerConfig) {
		c.unconfined = true
	}
}

// NewController creates an inactive controller bound to the calling goroutine.
func NewController[T any](opts ...ControllerOption) *Controller[T] {
	cfg := &controllerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var conf *internal.Confinement
	if !cfg.unconfined {
		conf = internal.NewConfinement()
	}

	return &Controller[T]{
		cell: internal.NewCell(conf, cfg.equal),
	}
}

// Set activates the controller with v.
//
// Setting a value equal to the current one does nothing. Setting a different
// value is a new activation: the current Scopes run first, then every
// observer is called again with v.
func (c *Controller[T]) Set(v T) {
	c.cell.Set(v)
}

// Reset deactivates the controller, running the live Scopes in subscription order.
func (c *Controller[T]) Reset() {
	c.cell.Reset()
}

// Subscribe registers the observer, see [Observable].
func (c *Controller[T]) Subscribe(observer Observer[T]) Scope {
	return c.cell.Subscribe(func(v any) func() {
		return observer(as[T](v))
	})
}

// IsActive reports whether the controller holds a value.
func (c *Controller[T]) IsActive() bool {
	return c.cell.IsActive()
}

// Get returns the current value and whether the controller is active.
func (c *Controller[T]) Get() (T, bool) {
	v, ok := c.cell.Value()
	return as[T](v), ok
}

// ReadOnly hides the write side of the controller.
func (c *Controller[T]) ReadOnly() Observable[T] {
	return readOnly[T]{c}
}

type readOnly[T any] struct {
	c *Controller[T]
}

func (r readOnly[T]) Subscribe(observer Observer[T]) Scope { return r.c.Subscribe(observer) }

func (r readOnly[T]) IsActive() bool { return r.c.IsActive() }
