package world

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/noise"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/scheduler"
	"github.com/VoidMesh/strata/internal/structure"
	"github.com/VoidMesh/strata/internal/terrain"
	"github.com/VoidMesh/strata/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory persistence.Store.
type memStore struct {
	mu     sync.Mutex
	chunks map[[2]int64]*chunk.Chunk
	err    error
}

func newMemStore() *memStore {
	return &memStore{chunks: make(map[[2]int64]*chunk.Chunk)}
}

func (m *memStore) Save(_ context.Context, c *chunk.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks[[2]int64{c.Seed, int64(c.Index)}] = c.Clone()
	return nil
}

func (m *memStore) Load(_ context.Context, seed int64, index int) (*chunk.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.chunks[[2]int64{seed, int64(index)}]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return c.Clone(), nil
}

func (m *memStore) Delete(_ context.Context, seed int64, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chunks, [2]int64{seed, int64(index)})
	return nil
}

func (m *memStore) List(_ context.Context, seed int64) ([]persistence.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []persistence.Summary
	for k, c := range m.chunks {
		if k[0] == seed {
			out = append(out, persistence.Summary{Index: c.Index, Width: c.Width, Height: c.Height})
		}
	}
	return out, nil
}

func (m *memStore) has(seed int64, index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.chunks[[2]int64{seed, int64(index)}]
	return ok
}

func newSource(t *testing.T, width, height int, chance float64, saved persistence.Store) *Source {
	t.Helper()
	catalog := block.DefaultCatalog()
	field := noise.NewPerlin()
	synth := terrain.New(catalog, field, biome.NewField(field, catalog, biome.DefaultParams()), terrain.DefaultParams())
	carver := structure.NewCarver(catalog, structure.DefaultParams())
	return NewSource(SourceConfig{Width: width, Height: height, DungeonChance: chance, RoomSize: 10}, synth, carver, saved)
}

func TestSource_GeneratesWhenNothingSaved(t *testing.T) {
	defer testutil.SetupTest(t, testutil.DefaultTestConfig())()
	src := newSource(t, 50, 150, 0, newMemStore())

	c, err := src.Chunk(context.Background(), 0, 42)
	require.NoError(t, err)
	assert.Equal(t, terrain.GenerateChunk(0, 50, 150, 42).Blocks, c.Blocks)
}

func TestSource_PrefersSavedChunk(t *testing.T) {
	defer testutil.SetupTest(t, testutil.DefaultTestConfig())()
	saved := newMemStore()
	src := newSource(t, 50, 150, 0, saved)

	edited := terrain.GenerateChunk(3, 50, 150, 42)
	edited.Set(0, 0, block.Stone)
	require.NoError(t, saved.Save(context.Background(), edited))

	c, err := src.Chunk(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, block.Stone, c.At(0, 0))

	other := terrain.GenerateChunk(4, 10, 10, 42)
	require.NoError(t, saved.Save(context.Background(), other))
	_, err = src.Chunk(context.Background(), 4, 42)
	assert.Error(t, err, "saved chunks with other dimensions are rejected")
}

func TestSource_LoadErrorsPropagate(t *testing.T) {
	defer testutil.SetupTest(t, testutil.DefaultTestConfig())()
	saved := newMemStore()
	saved.err = block.ErrUnknownBlock
	src := newSource(t, 50, 150, 0, saved)

	_, err := src.Chunk(context.Background(), 0, 1)
	assert.True(t, errors.Is(err, block.ErrUnknownBlock), "corrupt saves must not fall back to generation")
}

func TestSource_CarvesDungeons(t *testing.T) {
	defer testutil.SetupTest(t, testutil.DefaultTestConfig())()
	src := newSource(t, 50, 150, 1, nil)

	c := src.Generate(0, 42)
	walls := 0
	for _, id := range c.Blocks {
		if id == block.DungeonWall {
			walls++
		}
	}
	assert.Positive(t, walls)
	assert.Equal(t, c.Blocks, src.Generate(0, 42).Blocks, "carving is deterministic")

	for x := 0; x < c.Width; x++ {
		assert.Equal(t, block.Unbreakable, c.At(x, c.Height-1))
	}
}

func TestTextCompositor(t *testing.T) {
	tc := NewTextCompositor(block.DefaultCatalog())
	c := chunk.New(0, 1, 3, 2)
	c.Set(0, 0, block.Water)
	c.Set(1, 1, block.Stone)
	c.Set(2, 1, block.Unbreakable)

	frame, err := tc.Render(c)
	require.NoError(t, err)
	assert.Equal(t, "~  \n #=\n", string(frame))
}

// 8 columns of 4px tiles: chunks are 32px wide; a 64px screen at camera 0
// sees chunks [-2, 2].
func newTestLoop(t *testing.T, saved persistence.Store, viewDistance int) *Loop {
	t.Helper()
	t.Cleanup(testutil.SetupTest(t, testutil.DefaultTestConfig()))

	src := newSource(t, 8, 40, 0, saved)
	sched := scheduler.New(src)
	var saver chunk.Saver
	if saved != nil {
		saver = Saver{Store: saved}
	}
	store := chunk.NewStore(chunk.Options{
		ChunkWidth:   8,
		ChunkHeight:  40,
		TileSize:     4,
		ViewDistance: viewDistance,
		CacheTTL:     time.Millisecond,
	}, sched, saver, NewTextCompositor(block.DefaultCatalog()))

	loop := NewLoop(LoopConfig{Seed: 42, ScreenWidth: 64, FrameInterval: time.Millisecond}, store, sched)
	loop.Start(context.Background())
	t.Cleanup(func() { _ = loop.Shutdown() })
	return loop
}

func loaded(t *testing.T, l *Loop) []int {
	t.Helper()
	var idx []int
	require.NoError(t, l.Do(context.Background(), func(s *chunk.Store) { idx = s.Indices() }))
	return idx
}

func TestLoop_StreamsVisibleWindow(t *testing.T) {
	l := newTestLoop(t, nil, 1)

	testutil.Eventually(t, 2*time.Second, func() bool {
		return len(loaded(t, l)) == 5
	}, "initial window loaded")
	assert.Equal(t, []int{-2, -1, 0, 1, 2}, loaded(t, l))

	require.NoError(t, l.SetCamera(context.Background(), 320)) // window [8, 12]
	testutil.Eventually(t, 2*time.Second, func() bool {
		idx := loaded(t, l)
		return len(idx) == 5 && idx[0] == 8
	}, "window moved")

	x, frames, err := l.Camera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 320.0, x)
	assert.Positive(t, frames)

	assert.Equal(t, scheduler.Unrequested, l.Scheduler().State(0), "evicted chunks are released")
}

func TestLoop_EditsAreSavedOnEvictionAndShutdown(t *testing.T) {
	saved := newMemStore()
	l := newTestLoop(t, saved, 1)
	ctx := context.Background()

	testutil.Eventually(t, 2*time.Second, func() bool {
		return len(loaded(t, l)) == 5
	}, "initial window loaded")

	var editErrs [2]error
	require.NoError(t, l.Do(ctx, func(s *chunk.Store) {
		editErrs[0] = s.SetBlock(-2, 1, 1, block.Stone, nil)
		editErrs[1] = s.SetBlock(1, 1, 1, block.Stone, nil)
	}))
	require.NoError(t, editErrs[0])
	require.NoError(t, editErrs[1])

	var frame []byte
	var renderErr error
	require.NoError(t, l.Do(ctx, func(s *chunk.Store) {
		frame, renderErr = s.Composite(1, time.Now())
	}))
	require.NoError(t, renderErr)
	assert.Equal(t, "#", strings.Split(string(frame), "\n")[1][1:2])

	require.NoError(t, l.SetCamera(ctx, 64)) // window [0, 4]: -2 and -1 depart
	testutil.Eventually(t, 2*time.Second, func() bool {
		return saved.has(42, -2)
	}, "edited chunk saved on eviction")
	assert.False(t, saved.has(42, -1), "clean chunks are not saved")

	require.NoError(t, l.Shutdown())
	assert.True(t, saved.has(42, 1), "edited chunks are flushed on shutdown")
	assert.ErrorIs(t, l.Do(ctx, func(*chunk.Store) {}), ErrStopped)
}

func TestLoop_DoBeforeStartHonoursContext(t *testing.T) {
	defer testutil.SetupTest(t, testutil.DefaultTestConfig())()
	src := newSource(t, 8, 40, 0, nil)
	sched := scheduler.New(src)
	store := chunk.NewStore(chunk.Options{ChunkWidth: 8, ChunkHeight: 40, TileSize: 4, ViewDistance: 1}, sched, nil, nil)
	l := NewLoop(LoopConfig{Seed: 1, ScreenWidth: 64}, store, sched)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, func(*chunk.Store) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, l.Shutdown(), "shutting down a loop that never ran is a no-op")
}

func TestLoop_RestartAfterShutdown(t *testing.T) {
	l := newTestLoop(t, nil, 1)
	ctx := context.Background()

	require.NoError(t, l.Shutdown())
	assert.ErrorIs(t, l.Do(ctx, func(*chunk.Store) {}), ErrStopped)

	l.Start(ctx)
	testutil.Eventually(t, 2*time.Second, func() bool {
		return len(loaded(t, l)) == 5
	}, "restarted loop streams again")

	require.NoError(t, l.Shutdown())
	assert.NotPanics(t, func() { _ = l.Shutdown() })
	assert.ErrorIs(t, l.Do(ctx, func(*chunk.Store) {}), ErrStopped)
}
