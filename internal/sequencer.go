package internal

type Sequencer struct {
	// each nested Run increases the depth by 1
	// if depth > 0, sequenced writes are queued until the outermost Run is complete
	depth int

	pending []func()
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		depth: 0,
	}
}

// IsRunning reports whether an operation is in flight.
func (s *Sequencer) IsRunning() bool {
	return s.depth > 0
}

// Sequence runs fn now, or queues it behind the operation currently in flight.
func (s *Sequencer) Sequence(fn func()) {
	if s.IsRunning() {
		s.pending = append(s.pending, fn)
		return
	}

	s.Run(fn)
}

// Run runs fn immediately, even if another operation is in flight.
// The outermost Run drains the queued operations in order before returning.
func (s *Sequencer) Run(fn func()) {
	s.depth++
	defer func() {
		s.depth--
		// only non-empty if a panic unwound the drain below
		if s.depth == 0 {
			s.pending = nil
		}
	}()

	fn()

	if s.depth == 1 {
		for len(s.pending) > 0 {
			next := s.pending[0]
			s.pending = s.pending[1:]
			next()
		}
	}
}
