package workerpool

import (
	"context"
	"errors"
	"sync"
)

var ErrPoolClosed = errors.New("worker pool is closed")

type job struct {
	fn   func()
	done chan struct{}
}

// Pool runs CPU-bound analysis jobs on a fixed number of goroutines so a
// burst of requests cannot oversubscribe the machine.
type Pool struct {
	tasks  chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{tasks: make(chan job, size)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.tasks {
				j.fn()
				close(j.done)
			}
		}()
	}
	return p
}

// Do queues fn and waits for it. When ctx expires first Do returns ctx.Err();
// fn is not interrupted and its result must be discarded by the caller.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	j := job{fn: fn, done: make(chan struct{})}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	select {
	case p.tasks <- j:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work and waits for queued jobs to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

var (
	AnalysisPool *Pool
	poolOnce     sync.Once
)

// InitialiseAnalysisPool creates the process-wide pool once.
func InitialiseAnalysisPool(size int) *Pool {
	poolOnce.Do(func() {
		AnalysisPool = New(size)
	})
	return AnalysisPool
}
