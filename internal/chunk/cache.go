package chunk

import (
	"fmt"
	"time"
)

// Compositor renders a chunk for display. Implementations live outside the
// core; the store only decides when a render is stale.
type Compositor interface {
	Render(c *Chunk) ([]byte, error)
}

// CompositorFunc adapts a function to Compositor.
type CompositorFunc func(c *Chunk) ([]byte, error)

func (f CompositorFunc) Render(c *Chunk) ([]byte, error) { return f(c) }

// entry is a loaded chunk plus its render cache state.
type entry struct {
	chunk      *Chunk
	frame      []byte
	lastRender time.Time
	dirty      bool
	edited     bool
}

func (e *entry) stale(now time.Time, ttl time.Duration) bool {
	return e.dirty || e.frame == nil || now.Sub(e.lastRender) >= ttl
}

// Invalidate marks the cached render of index stale. It is a no-op for chunks
// that are not loaded.
func (s *Store) Invalidate(index int) {
	if e, ok := s.entries[index]; ok {
		e.dirty = true
	}
}

// Composite returns the render of index, rebuilding it when the entry is
// dirty or its last render is older than the cache TTL.
func (s *Store) Composite(index int, now time.Time) ([]byte, error) {
	e, ok := s.entries[index]
	if !ok {
		return nil, fmt.Errorf("composite chunk %d: %w", index, ErrNotLoaded)
	}
	if s.compositor == nil {
		return nil, fmt.Errorf("composite chunk %d: no compositor configured", index)
	}
	if !e.stale(now, s.opts.CacheTTL) {
		s.cacheHits++
		return e.frame, nil
	}

	frame, err := s.compositor.Render(e.chunk)
	if err != nil {
		return nil, fmt.Errorf("composite chunk %d: %w", index, err)
	}
	e.frame = frame
	e.lastRender = now
	e.dirty = false
	s.cacheMisses++
	return frame, nil
}
