// Package parallel runs index-range work on a fixed set of goroutines.
//
// The engine uses it to marble the existing drops of a spawn concurrently.
// Each drop's transform reads only the new drop, so contiguous chunks of
// the drop list can be processed independently and joined.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines fed from per-worker queues.
//
// Workers pull from their own queue first and steal from the others when it
// is empty, which balances chunks of uneven cost.
//
// Thread safety: ForEachChunk may be called from several goroutines, but
// not concurrently with Close.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ForEachChunk splits [0, n) into at most Workers contiguous ranges, calls
// fn(lo, hi) for each on the pool and waits for all of them.
//
// If the pool is closed, or there is nothing worth splitting, fn runs on the
// calling goroutine.
func (p *WorkerPool) ForEachChunk(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunks := min(p.workers, n)
	if chunks <= 1 || !p.running.Load() {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(chunks)
	size := (n + chunks - 1) / chunks
	for i := range chunks {
		lo := i * size
		hi := min(lo+size, n)
		work := func() {
			defer wg.Done()
			if lo < hi {
				fn(lo, hi)
			}
		}
		select {
		case p.workQueues[i] <- work:
		case <-p.done:
			work()
		}
	}
	wg.Wait()
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
