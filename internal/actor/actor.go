// Package actor confines mutable state to a single goroutine.
//
// State owned by a Loop is only ever touched from inside functions passed to Do, which run one at
// a time on the loop goroutine in submission order. Callers block until their function has run.
package actor

import "sync"

// Loop runs submitted functions sequentially on one goroutine.
type Loop struct {
	ops       chan func()
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Start launches the loop goroutine.
func Start() *Loop {
	l := &Loop{
		ops:     make(chan func()),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case fn := <-l.ops:
			fn()
		case <-l.done:
			return
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
// It reports false without running fn when the loop has been closed.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.ops <- op:
	case <-l.done:
		return false
	}
	<-finished
	return true
}

// Close stops the loop after any in-flight function completes. It is safe to call more than once.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	<-l.stopped
}
