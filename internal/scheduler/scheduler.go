// Package scheduler runs chunk generation on a background worker and hands
// finished chunks back to the world loop.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/logging"
	"github.com/charmbracelet/log"
)

type State int

const (
	Unrequested State = iota
	Queued
	InProgress
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unrequested"
	}
}

type Request struct {
	Index int
	Seed  int64
}

type Result struct {
	Index int
	Chunk *chunk.Chunk
}

// Source produces the chunk for a request. It runs on the worker goroutine.
type Source interface {
	Chunk(ctx context.Context, index int, seed int64) (*chunk.Chunk, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, index int, seed int64) (*chunk.Chunk, error)

func (f SourceFunc) Chunk(ctx context.Context, index int, seed int64) (*chunk.Chunk, error) {
	return f(ctx, index, seed)
}

type Stats struct {
	Queued     int    `json:"queued"`
	InProgress int    `json:"in_progress"`
	Completed  int    `json:"completed"`
	Failed     int    `json:"failed"`
	Pending    int    `json:"pending"`
	Ready      int    `json:"ready"`
	Generated  uint64 `json:"generated"`
	Failures   uint64 `json:"failures"`
}

// Scheduler deduplicates generation requests and runs them one at a time.
// Every index moves Unrequested -> Queued -> InProgress -> Completed or
// Failed. Failed is terminal until Retry; Completed until Release.
type Scheduler struct {
	source Source
	logger *log.Logger

	requests *queue[Request]
	ready    *queue[Result]

	mu        sync.Mutex
	states    map[int]State
	generated uint64
	failures  uint64

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(source Source) *Scheduler {
	return &Scheduler{
		source:   source,
		logger:   logging.WithComponent("scheduler"),
		requests: newQueue[Request](),
		ready:    newQueue[Result](),
		states:   make(map[int]State),
	}
}

// Enqueue requests generation of index. It reports false when the index is
// already queued, in flight, completed or failed.
func (s *Scheduler) Enqueue(index int, seed int64) bool {
	s.mu.Lock()
	if st := s.states[index]; st != Unrequested {
		s.mu.Unlock()
		return false
	}
	s.states[index] = Queued
	s.mu.Unlock()

	s.requests.push(Request{Index: index, Seed: seed})
	return true
}

// PollReady returns every result published since the last call. It never blocks.
func (s *Scheduler) PollReady() []Result {
	return s.ready.drain()
}

// ReadyChunks is PollReady without the result envelope.
func (s *Scheduler) ReadyChunks() []*chunk.Chunk {
	results := s.PollReady()
	if len(results) == 0 {
		return nil
	}
	out := make([]*chunk.Chunk, len(results))
	for i, r := range results {
		out[i] = r.Chunk
	}
	return out
}

// State returns the lifecycle state of index.
func (s *Scheduler) State(index int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[index]
}

// Release forgets a completed index so it may be generated again. The world
// loop calls it after evicting the chunk.
func (s *Scheduler) Release(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[index] != Completed {
		return false
	}
	delete(s.states, index)
	return true
}

// Retry clears a failed index so the next Enqueue schedules it again.
func (s *Scheduler) Retry(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[index] != Failed {
		return false
	}
	delete(s.states, index)
	s.logger.Info("generation retry allowed", "chunk_index", index)
	return true
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	st := Stats{Generated: s.generated, Failures: s.failures}
	for _, state := range s.states {
		switch state {
		case Queued:
			st.Queued++
		case InProgress:
			st.InProgress++
		case Completed:
			st.Completed++
		case Failed:
			st.Failed++
		}
	}
	s.mu.Unlock()

	st.Pending = s.requests.len()
	st.Ready = s.ready.len()
	return st
}

// Start launches the worker. It is a no-op when the worker is already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	s.logger.Debug("generation worker started")
}

// Stop cancels the worker and waits for the current request to finish.
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Debug("generation worker stopped")
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		for {
			if ctx.Err() != nil {
				return
			}
			req, ok := s.requests.pop()
			if !ok {
				break
			}
			s.process(ctx, req)
		}

		select {
		case <-ctx.Done():
			return
		case <-s.requests.ready:
		}
	}
}

func (s *Scheduler) process(ctx context.Context, req Request) {
	s.mu.Lock()
	if s.states[req.Index] != Queued {
		s.mu.Unlock()
		return
	}
	s.states[req.Index] = InProgress
	s.mu.Unlock()

	start := time.Now()
	c, err := s.generate(ctx, req)

	s.mu.Lock()
	if err != nil {
		s.states[req.Index] = Failed
		s.failures++
		s.mu.Unlock()
		s.logger.Error("chunk generation failed", "chunk_index", req.Index, "seed", req.Seed, "error", err, "duration", time.Since(start))
		return
	}
	s.states[req.Index] = Completed
	s.generated++
	s.mu.Unlock()

	s.ready.push(Result{Index: req.Index, Chunk: c})
	s.logger.Debug("chunk generated", "chunk_index", req.Index, "duration", time.Since(start))
}

// generate calls the source, converting a panic into an error.
func (s *Scheduler) generate(ctx context.Context, req Request) (c *chunk.Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic generating chunk %d: %v", req.Index, r)
		}
	}()

	c, err = s.source.Chunk(ctx, req.Index, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chunk %d: %w", req.Index, err)
	}
	if c == nil {
		return nil, fmt.Errorf("source returned no chunk for %d", req.Index)
	}
	return c, nil
}
