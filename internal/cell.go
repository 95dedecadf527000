package internal

import "iter"

// Cell is an untyped activation slot: either inactive, or active with exactly one value.
type Cell struct {
	conf  *Confinement
	seq   *Sequencer
	equal func(a, b any) bool

	active bool
	value  any

	subsHead *SubscriptionLink
}

// SubscriptionLink pairs an observer with the teardown its current activation produced.
type SubscriptionLink struct {
	observer func(any) func()

	// teardown of the live activation, nil if none
	scope func()

	// set once the link left the cell, the link must not be activated again
	removed bool

	prevSub *SubscriptionLink
	nextSub *SubscriptionLink
}

func NewCell(conf *Confinement, equal func(a, b any) bool) *Cell {
	if equal == nil {
		equal = IsEqual
	}

	return &Cell{
		conf:  conf,
		seq:   NewSequencer(),
		equal: equal,
	}
}

func (c *Cell) IsActive() bool {
	return c.active
}

func (c *Cell) Value() (any, bool) {
	return c.value, c.active
}

// Set activates the cell with v.
// An equal value is a no-op, a different value closes the current activation first.
func (c *Cell) Set(v any) {
	c.conf.Check("Set")
	c.seq.Sequence(func() { c.set(v) })
}

// Reset deactivates the cell, running every live teardown in subscription order.
func (c *Cell) Reset() {
	c.conf.Check("Reset")
	c.seq.Sequence(c.reset)
}

// Subscribe registers an observer, activating it right away if the cell is active.
// The returned function unsubscribes, running the observer's live teardown.
func (c *Cell) Subscribe(observer func(any) func()) func() {
	c.conf.Check("Subscribe")

	link := &SubscriptionLink{observer: observer}
	c.addSubLink(link)

	if c.active {
		ok := false
		defer func() {
			// a panicking observer never gets a handle back, don't keep it around
			if !ok {
				c.unsubscribe(link)
			}
		}()

		c.seq.Run(func() { c.activate(link) })
		ok = true
	}

	return func() {
		c.conf.Check("Unsubscribe")
		c.unsubscribe(link)
	}
}

func (c *Cell) set(v any) {
	if c.active {
		if c.equal(c.value, v) {
			return
		}
		c.reset()
	}

	c.active = true
	c.value = v

	for link := range c.snapshot() {
		if !c.active {
			return
		}
		c.activate(link)
	}
}

func (c *Cell) reset() {
	if !c.active {
		return
	}

	c.active = false
	c.value = nil

	for link := range c.snapshot() {
		link.close()
	}
}

func (c *Cell) activate(link *SubscriptionLink) {
	if link.removed {
		return
	}

	link.scope = link.observer(c.value)

	// the observer unsubscribed itself while activating
	if link.removed || !c.active {
		link.close()
	}
}

func (c *Cell) unsubscribe(link *SubscriptionLink) {
	if link.removed {
		return
	}

	link.removed = true
	c.removeSubLink(link)
	link.close()
}

func (l *SubscriptionLink) close() {
	if scope := l.scope; scope != nil {
		l.scope = nil
		scope()
	}
}

// snapshot iterates over the links present when it was called,
// so links added by observers while iterating are left out.
func (c *Cell) snapshot() iter.Seq[*SubscriptionLink] {
	var links []*SubscriptionLink
	for link := c.subsHead; link != nil; link = link.nextSub {
		links = append(links, link)
	}

	return func(yield func(*SubscriptionLink) bool) {
		for _, link := range links {
			if !yield(link) {
				return
			}
		}
	}
}

func (c *Cell) addSubLink(link *SubscriptionLink) {
	if c.subsHead == nil {
		c.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := c.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		c.subsHead.prevSub = link
	}
}

func (c *Cell) removeSubLink(link *SubscriptionLink) {
	head := c.subsHead

	// single link
	if link.prevSub == link {
		c.subsHead = nil
		link.nextSub = nil
		return
	}

	if link == head {
		c.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	next := link.nextSub
	if next == nil {
		next = c.subsHead
	}
	next.prevSub = link.prevSub

	link.prevSub = link
	link.nextSub = nil
}

// IsEqual compares with ==, treating values that cannot be compared as different.
func IsEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	return a == b
}
