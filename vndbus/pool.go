package vndbus

import (
	"errors"
	"sync"
)

// ErrPoolClosed is returned by [Pool.Do] after [Pool.Close] is called.
var ErrPoolClosed = errors.New("pool closed")

// A Pool executes functions on a fixed set of worker goroutines.
type Pool struct {
	queue chan func()
	done  chan struct{}

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewPool returns a Pool of size workers, counting the goroutine that will
// eventually call [Pool.Serve] towards size. Sizes below one behave as one.
func NewPool(size int) *Pool {
	p := &Pool{queue: make(chan func()), done: make(chan struct{})}
	for i := 1; i < size; i++ {
		p.wg.Add(1)
		go func() { defer p.wg.Done(); p.work() }()
	}
	return p
}

// work executes queued functions until the pool is closed.
func (p *Pool) work() {
	for {
		select {
		case <-p.done:
			return
		case f := <-p.queue:
			f()
		}
	}
}

// Serve joins the calling goroutine to the pool as a worker. Serve returns
// after [Pool.Close] is called and every other worker has stopped.
func (p *Pool) Serve() {
	p.work()
	p.wg.Wait()
}

// Do executes f on a pool worker and returns after f completes.
// Do blocks until a worker becomes available.
func (p *Pool) Do(f func()) error {
	ran := make(chan struct{})
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.queue <- func() { f(); close(ran) }:
		<-ran
		return nil
	}
}

// Close releases the pool workers. Close does not interrupt a function that
// is already executing.
func (p *Pool) Close() { p.closeOnce.Do(func() { close(p.done) }) }
