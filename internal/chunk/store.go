package chunk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/logging"
	"github.com/charmbracelet/log"
)

// Loader is the store's view of the generation scheduler.
type Loader interface {
	Enqueue(index int, seed int64) bool
	ReadyChunks() []*Chunk
	Release(index int) bool
}

// Saver persists edited chunks when they are evicted.
type Saver interface {
	SaveChunk(c *Chunk) error
}

type Options struct {
	ChunkWidth   int
	ChunkHeight  int
	TileSize     int
	ViewDistance int
	CacheTTL     time.Duration
}

// Window is an inclusive range of chunk indices.
type Window struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

func (w Window) Contains(index int) bool {
	return index >= w.Left && index <= w.Right
}

func (w Window) Len() int {
	if w.Right < w.Left {
		return 0
	}
	return w.Right - w.Left + 1
}

type StoreStats struct {
	Loaded         int    `json:"loaded"`
	Edited         int    `json:"edited"`
	PendingLoads   int    `json:"pending_loads"`
	PendingUnloads int    `json:"pending_unloads"`
	Window         Window `json:"window"`
	Requested      uint64 `json:"requested"`
	Evicted        uint64 `json:"evicted"`
	CacheHits      uint64 `json:"cache_hits"`
	CacheMisses    uint64 `json:"cache_misses"`
}

// Store owns the loaded chunks. It is not safe for concurrent use: a single
// goroutine drives it, and chunks leave it only by eviction.
type Store struct {
	opts       Options
	loader     Loader
	saver      Saver
	compositor Compositor
	logger     *log.Logger

	entries   map[int]*entry
	window    Window
	hasWindow bool

	loadQueue   []int
	unloadQueue []int

	requested   uint64
	evicted     uint64
	cacheHits   uint64
	cacheMisses uint64
}

// NewStore builds an empty store. saver and compositor may be nil.
func NewStore(opts Options, loader Loader, saver Saver, compositor Compositor) *Store {
	return &Store{
		opts:       opts,
		loader:     loader,
		saver:      saver,
		compositor: compositor,
		logger:     logging.WithComponent("chunk_store"),
		entries:    make(map[int]*entry),
	}
}

func (s *Store) chunkPixelWidth() float64 {
	return float64(s.opts.ChunkWidth * s.opts.TileSize)
}

// WindowFor computes the visible window for a camera centred on cameraX,
// padded by one chunk on each side.
func (s *Store) WindowFor(cameraX, screenWidth float64) Window {
	cpw := s.chunkPixelWidth()
	if cpw <= 0 {
		return Window{}
	}
	left := int(math.Floor((cameraX - screenWidth/2) / cpw))
	right := int(math.Floor((cameraX + screenWidth/2) / cpw))
	return Window{Left: left - 1, Right: right + 1}
}

// UpdateVisibleWindow diffs the window for the camera against the previous
// one, queueing entered indices for load and departed ones for unload.
func (s *Store) UpdateVisibleWindow(cameraX, screenWidth float64) {
	next := s.WindowFor(cameraX, screenWidth)
	if s.hasWindow && next == s.window {
		return
	}
	prev, hadPrev := s.window, s.hasWindow

	for i := next.Left; i <= next.Right; i++ {
		if hadPrev && prev.Contains(i) {
			continue
		}
		if _, loaded := s.entries[i]; !loaded {
			s.loadQueue = append(s.loadQueue, i)
		}
	}
	if hadPrev {
		for i := prev.Left; i <= prev.Right; i++ {
			if !next.Contains(i) {
				s.unloadQueue = append(s.unloadQueue, i)
			}
		}
	}

	s.window, s.hasWindow = next, true
	s.logger.Debug("visible window changed", "left", next.Left, "right", next.Right, "loads", len(s.loadQueue), "unloads", len(s.unloadQueue))
}

// ProcessQueues forwards pending loads to the loader, merges finished chunks
// and evicts departed chunks while more than twice the view distance is held.
func (s *Store) ProcessQueues(seed int64) {
	for _, i := range s.loadQueue {
		if _, loaded := s.entries[i]; loaded || !s.window.Contains(i) {
			continue
		}
		if s.loader.Enqueue(i, seed) {
			s.requested++
		}
	}
	s.loadQueue = s.loadQueue[:0]

	for _, c := range s.loader.ReadyChunks() {
		s.merge(c)
	}

	keep := s.unloadQueue[:0]
	for _, i := range s.unloadQueue {
		if s.window.Contains(i) {
			continue
		}
		if _, loaded := s.entries[i]; !loaded {
			continue
		}
		if len(s.entries) <= 2*s.opts.ViewDistance || !s.evict(i) {
			keep = append(keep, i)
		}
	}
	s.unloadQueue = keep
}

func (s *Store) merge(c *Chunk) {
	if _, loaded := s.entries[c.Index]; loaded {
		return
	}
	s.entries[c.Index] = &entry{chunk: c, dirty: true}
	s.Invalidate(c.Index - 1)
	s.Invalidate(c.Index + 1)
	if s.hasWindow && !s.window.Contains(c.Index) {
		s.unloadQueue = append(s.unloadQueue, c.Index)
	}
}

// evict drops a departed chunk. An edited chunk that fails to save stays
// loaded and edited so the next frame retries it.
func (s *Store) evict(index int) bool {
	e := s.entries[index]
	if e.edited && s.saver != nil {
		if err := s.saver.SaveChunk(e.chunk); err != nil {
			s.logger.Error("failed to save evicted chunk, keeping it loaded", "chunk_index", index, "error", err)
			return false
		}
	}
	delete(s.entries, index)
	s.loader.Release(index)
	s.evicted++
	s.logger.Debug("chunk evicted", "chunk_index", index, "edited", e.edited)
	return true
}

// Get returns the loaded chunk at index.
func (s *Store) Get(index int) (*Chunk, bool) {
	e, ok := s.entries[index]
	if !ok {
		return nil, false
	}
	return e.chunk, true
}

// Put inserts a chunk directly, bypassing the loader.
func (s *Store) Put(c *Chunk) {
	delete(s.entries, c.Index)
	s.merge(c)
}

// SetBlock edits a loaded chunk in place. inst, when non-nil, becomes the
// cell's stateful instance. Edits on a boundary column also invalidate the
// neighbouring chunk.
func (s *Store) SetBlock(index, x, y int, id block.ID, inst *block.Instance) error {
	e, ok := s.entries[index]
	if !ok {
		return fmt.Errorf("set block in chunk %d: %w", index, ErrNotLoaded)
	}
	if !e.chunk.Set(x, y, id) {
		return fmt.Errorf("set block (%d,%d) in chunk %d: %w", x, y, index, ErrOutOfBounds)
	}
	if inst != nil {
		if err := e.chunk.SetInstance(x, y, inst); err != nil {
			return err
		}
	}

	e.edited = true
	e.dirty = true
	if x == 0 {
		s.Invalidate(index - 1)
	}
	if x == e.chunk.Width-1 {
		s.Invalidate(index + 1)
	}
	return nil
}

// Flush saves every edited chunk and clears their edited flags.
func (s *Store) Flush() error {
	if s.saver == nil {
		return nil
	}
	var firstErr error
	for _, i := range s.Indices() {
		e := s.entries[i]
		if !e.edited {
			continue
		}
		if err := s.saver.SaveChunk(e.chunk); err != nil {
			s.logger.Error("failed to flush chunk", "chunk_index", i, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		e.edited = false
	}
	return firstErr
}

func (s *Store) Window() Window { return s.window }

func (s *Store) Len() int { return len(s.entries) }

// Indices returns the loaded indices in ascending order.
func (s *Store) Indices() []int {
	out := make([]int, 0, len(s.entries))
	for i := range s.entries {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Dirty reports whether the render cache of index is stale by invalidation.
func (s *Store) Dirty(index int) bool {
	e, ok := s.entries[index]
	return ok && e.dirty
}

func (s *Store) Stats() StoreStats {
	st := StoreStats{
		Loaded:         len(s.entries),
		PendingLoads:   len(s.loadQueue),
		PendingUnloads: len(s.unloadQueue),
		Window:         s.window,
		Requested:      s.requested,
		Evicted:        s.evicted,
		CacheHits:      s.cacheHits,
		CacheMisses:    s.cacheMisses,
	}
	for _, e := range s.entries {
		if e.edited {
			st.Edited++
		}
	}
	return st
}
