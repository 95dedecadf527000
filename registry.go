package reactive

import (
	"maps"
	"slices"

	"github.com/AnatoleLucet/reactive/internal"
)

// Registry maps string keys to controllers created on first access.
// Like a Controller, it is bound to the goroutine that created it.
type Registry[T any] struct {
	conf *internal.Confinement
	opts []ControllerOption

	controllers map[string]*Controller[T]
}

// NewRegistry creates an empty registry. opts apply to every controller it creates.
func NewRegistry[T any](opts ...ControllerOption) *Registry[T] {
	return &Registry[T]{
		conf:        internal.NewConfinement(),
		opts:        opts,
		controllers: make(map[string]*Controller[T]),
	}
}

// Get returns the controller for key, creating an inactive one if needed.
func (r *Registry[T]) Get(key string) *Controller[T] {
	r.conf.Check("Registry.Get")

	if c, ok := r.controllers[key]; ok {
		return c
	}

	c := NewController[T](r.opts...)
	r.controllers[key] = c
	return c
}

// Lookup returns the controller for key without creating it.
func (r *Registry[T]) Lookup(key string) (*Controller[T], bool) {
	r.conf.Check("Registry.Lookup")

	c, ok := r.controllers[key]
	return c, ok
}

// Remove resets the controller for key and forgets it.
// It reports whether the key was present.
func (r *Registry[T]) Remove(key string) bool {
	r.conf.Check("Registry.Remove")

	c, ok := r.controllers[key]
	if !ok {
		return false
	}

	delete(r.controllers, key)
	c.Reset()
	return true
}

// Keys returns the registered keys in sorted order.
func (r *Registry[T]) Keys() []string {
	r.conf.Check("Registry.Keys")
	return slices.Sorted(maps.Keys(r.controllers))
}

func (r *Registry[T]) Len() int {
	return len(r.controllers)
}
