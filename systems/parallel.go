package systems

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/rigid/components"
)

// DefaultParallelThreshold is the pair count below which the narrow phase
// stays on the calling goroutine. Below this, goroutine overhead dominates.
const DefaultParallelThreshold = 256

// narrowChunk is a range of pairs for one worker.
type narrowChunk struct {
	start, end int
}

// NarrowPool runs SAT tests on persistent worker goroutines. Workers only
// read body state; manifolds are written to distinct slots of a shared
// result slice and resolved afterwards on the caller's goroutine.
type NarrowPool struct {
	numWorkers int
	threshold  int

	// set for the duration of run
	bodies  []*components.RigidBody
	pairs   []Pair
	results []Manifold

	workChan chan narrowChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewNarrowPool creates a pool with the given worker count (0 = GOMAXPROCS)
// and pair threshold (0 = DefaultParallelThreshold). Workers start lazily.
func NewNarrowPool(workers, threshold int) *NarrowPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &NarrowPool{numWorkers: workers, threshold: threshold}
}

// Workers returns the number of worker goroutines.
func (p *NarrowPool) Workers() int { return p.numWorkers }

// Threshold returns the minimum pair count that uses the workers.
func (p *NarrowPool) Threshold() int { return p.threshold }

func (p *NarrowPool) start() {
	if p.running {
		return
	}
	p.workChan = make(chan narrowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Close stops the workers. The pool may be reused; workers restart on demand.
func (p *NarrowPool) Close() {
	if p == nil || !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *NarrowPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			for i := chunk.start; i < chunk.end; i++ {
				p.results[i] = Collide(p.bodies, p.pairs[i])
			}
			p.doneChan <- struct{}{}
		}
	}
}

// run tests every pair and returns one manifold per pair, in pair order.
// The returned slice is reused by the next call.
func (p *NarrowPool) run(bodies []*components.RigidBody, pairs []Pair) []Manifold {
	n := len(pairs)
	if cap(p.results) < n {
		p.results = make([]Manifold, n)
	}
	p.results = p.results[:n]
	p.bodies = bodies
	p.pairs = pairs

	p.start()

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- narrowChunk{start: start, end: end}
		dispatched++
	}
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}

	p.bodies = nil
	p.pairs = nil
	return p.results
}
