package internal

import (
	"iter"
)

type Owner struct {
	conf *Confinement

	// cleanup functions to be called when the owner is disposed
	cleanups []func()

	// panic error handlers
	catchers []func(any)

	disposed bool

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

func NewOwner(conf *Confinement) *Owner {
	return &Owner{
		conf:     conf,
		cleanups: make([]func(), 0),
	}
}

// Guard runs fn, handing a panic to the owner's catchers.
// If no catcher is registered (here or in a parent), the panic propagates as usual.
func (o *Owner) Guard(fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			catchers := o.allCatchers()
			if len(catchers) == 0 {
				panic(r)
			}

			panicked = true
			for _, catcher := range catchers {
				catcher(r)
			}
		}
	}()

	fn()
	return false
}

func (o *Owner) allCatchers() []func(any) {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) > 0 {
			return owner.catchers
		}
	}

	return nil
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (parent *Owner) removeChild(child *Owner) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else if parent.childrenHead == child {
		parent.childrenHead = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := n.childrenHead

		for child != nil {
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

func (n *Owner) IsDisposed() bool {
	return n.disposed
}

// Dispose disposes the children (newest first), then runs the cleanups in reverse order.
// Disposing twice is a no-op.
func (n *Owner) Dispose() {
	n.conf.Check("Dispose")

	if n.disposed {
		return
	}
	n.disposed = true

	n.DisposeChildren()

	for len(n.cleanups) > 0 {
		last := len(n.cleanups) - 1
		cleanup := n.cleanups[last]
		n.cleanups = n.cleanups[:last]
		cleanup()
	}
	n.cleanups = nil

	if n.parent != nil {
		n.parent.removeChild(n)
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
	n.childrenHead = nil
}

// OnCleanup registers fn to run on dispose. On a disposed owner fn runs right away.
func (n *Owner) OnCleanup(fn func()) {
	n.conf.Check("OnCleanup")

	if n.disposed {
		fn()
		return
	}

	n.cleanups = append(n.cleanups, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.catchers = append(n.catchers, fn)
}
