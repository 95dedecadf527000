package cast

import (
	"context"
	"sync"
	"time"
)

// Loop is the designated main thread of the shell.
// Work coming from other goroutines (platform callbacks, timers) is posted
// onto the loop and runs on whichever goroutine calls Drain or Run.
type Loop struct {
	mu    sync.Mutex
	queue []func()

	wake chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After posts fn once d has elapsed. The returned function cancels it if it
// has not fired yet, and reports whether it was cancelled.
func (l *Loop) After(d time.Duration, fn func()) (cancel func() bool) {
	t := time.AfterFunc(d, func() { l.Post(fn) })
	return t.Stop
}

// Drain runs queued functions, including those they post, until the queue is empty.
// It returns how many functions ran.
func (l *Loop) Drain() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// Run drains the loop whenever work is posted, until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
