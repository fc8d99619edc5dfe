// Package worker validates game files in parallel. Every item is replayed
// on its own engine.Game, so workers share no board state.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
	"github.com/lgbarn/infinite-chess-go/internal/output"
)

// WorkItem is one game file to validate.
type WorkItem struct {
	Path  string
	Game  *config.Game // Already loaded game, or nil to load Path
	Index int          // Position in the input list
}

// ProcessResult is the outcome of validating one game file.
type ProcessResult struct {
	Index        int
	Report       *output.Report
	Signature    hashing.GameSignature // Final position, for duplicate detection
	Matched      bool                  // The report passed the filter
	ShouldOutput bool                  // The report goes to the main output
	OutputToDup  bool                  // The report goes to the duplicate file
	Error        error
}

// ProcessFunc validates one work item. Replayer.Process is the usual one.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc on a fixed number of goroutines. Results arrive
// in completion order; a Sequencer restores input order.
type Pool struct {
	workers int
	buffer  int
	items   chan WorkItem
	results chan ProcessResult
	process ProcessFunc
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of games validated at once.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets how many items and results may wait in the queues.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.buffer = size
		}
	}
}

// NewPool creates a pool running process. It defaults to one worker and a
// buffer of ten.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{workers: 1, buffer: 10, process: process}
	for _, opt := range opts {
		opt(p)
	}
	p.items = make(chan WorkItem, p.buffer)
	p.results = make(chan ProcessResult, p.buffer)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for item := range p.items {
		if p.stopped.Load() {
			continue
		}
		p.results <- p.process(item)
	}
}

// Submit queues item, blocking while the queue is full. It returns false
// without queueing once the pool is stopped.
func (p *Pool) Submit(item WorkItem) bool {
	if p.stopped.Load() {
		return false
	}
	p.items <- item
	return true
}

// Stop makes the workers skip every item they have not started. Results
// already produced are still delivered.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// Close ends the input and waits for the workers. Results is closed once
// the last of them is done, so it must be drained concurrently.
func (p *Pool) Close() {
	close(p.items)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel results are delivered on.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Sequencer puts results back into input order.
type Sequencer struct {
	next    int
	pending map[int]ProcessResult
}

// NewSequencer creates a Sequencer expecting index 0 first.
func NewSequencer() *Sequencer {
	return &Sequencer{pending: make(map[int]ProcessResult)}
}

// Add takes one result and returns those now ready, in input order.
func (s *Sequencer) Add(res ProcessResult) []ProcessResult {
	s.pending[res.Index] = res
	var ready []ProcessResult
	for {
		r, ok := s.pending[s.next]
		if !ok {
			return ready
		}
		delete(s.pending, s.next)
		s.next++
		ready = append(ready, r)
	}
}

// Waiting returns the number of results held back for an earlier one.
func (s *Sequencer) Waiting() int {
	return len(s.pending)
}
