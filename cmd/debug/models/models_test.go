package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/config"
	"github.com/VoidMesh/strata/internal/world"
)

func testEnv(t *testing.T) Env {
	t.Helper()
	p, err := world.NewPipeline(block.DefaultCatalog(), "perlin", config.DefaultTuning())
	require.NoError(t, err)
	return Env{
		Catalog:  p.Catalog,
		Biomes:   p.Biomes,
		Synth:    p.Synth,
		Carver:   p.Carver,
		RoomSize: p.Tuning.Structure.RoomSize,
		Width:    50,
		Height:   150,
		TileSize: 16,
		Seed:     42,
	}
}

func TestChunkExplorer_GeneratesAndRenders(t *testing.T) {
	m := NewChunkExplorerModel(testEnv(t))
	m.SetSize(120, 40)

	msg := m.generateCmd()()
	generated, ok := msg.(chunkGeneratedMsg)
	require.True(t, ok)
	assert.Len(t, generated.columns, 50)
	assert.Empty(t, generated.rooms, "dungeons start disabled")

	next, _ := m.Update(msg)
	m = next.(ChunkExplorerModel)
	require.NotNil(t, m.chunk)
	assert.Equal(t, m.chunk.Surface[m.cursorX], m.cursorY, "cursor starts on the surface")
	assert.LessOrEqual(t, m.scrollY, m.cursorY)
	assert.Greater(t, m.scrollY+m.gridRows(), m.cursorY)

	view := m.View()
	assert.Contains(t, view, "chunk 0, seed 42")
	assert.Contains(t, view, "Biome")
}

func TestChunkExplorer_DungeonsCarveRooms(t *testing.T) {
	m := NewChunkExplorerModel(testEnv(t))
	m.dungeons = true

	generated := m.generateCmd()().(chunkGeneratedMsg)
	assert.NotEmpty(t, generated.rooms)
}

func TestBiomeModel_View(t *testing.T) {
	m := NewBiomeModel(testEnv(t))
	m.SetSize(80, 30)

	view := m.View()
	assert.Contains(t, view, "Biome Strip")
	assert.Contains(t, view, "plains")
	assert.Contains(t, view, "desert")
}

func TestBar(t *testing.T) {
	assert.Equal(t, " ", bar(-1))
	assert.Equal(t, " ", bar(0))
	assert.Equal(t, "█", bar(1))
	assert.Equal(t, "█", bar(3))
}

func TestSavedModel_WithoutDatabase(t *testing.T) {
	m := NewSavedModel(testEnv(t))
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No database")
}

func TestApp_SwitchView(t *testing.T) {
	app := NewApp(testEnv(t), "menu")
	_, _ = app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := app.Update(NewSwitchViewMsg(BiomeView))
	assert.Nil(t, cmd)
	assert.Equal(t, BiomeView, app.currentView)
	assert.Contains(t, app.View(), "Biome Strip")

	_, cmd = app.Update(NewSwitchViewMsg(ChunkExplorerView))
	assert.NotNil(t, cmd, "entering the explorer generates a chunk")
}
