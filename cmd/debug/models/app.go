package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/structure"
	"github.com/VoidMesh/strata/internal/terrain"
	"github.com/VoidMesh/strata/internal/world"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	ChunkExplorerView
	BiomeView
	StreamView
	SavedView
)

const viewCount = 5

// Env is the generation pipeline and world the views inspect.
type Env struct {
	Catalog  *block.Catalog
	Biomes   *biome.Field
	Synth    *terrain.Synthesizer
	Carver   *structure.Carver
	RoomSize int
	Width    int
	Height   int
	TileSize int
	Seed     int64

	// Loop drives the stream monitor. Saved is nil without a database.
	Loop  *world.Loop
	Saved persistence.Store
}

// App is the main application model
type App struct {
	env Env

	currentView ViewType
	width       int
	height      int

	menu          MenuModel
	chunkExplorer ChunkExplorerModel
	biomes        BiomeModel
	stream        StreamModel
	saved         SavedModel

	showHelp bool
}

// NewApp creates a new application instance
func NewApp(env Env, startView string) *App {
	app := &App{
		env:           env,
		currentView:   MenuView,
		menu:          NewMenuModel(),
		chunkExplorer: NewChunkExplorerModel(env),
		biomes:        NewBiomeModel(env),
		stream:        NewStreamModel(env),
		saved:         NewSavedModel(env),
	}

	switch startView {
	case "chunks":
		app.currentView = ChunkExplorerView
	case "biomes":
		app.currentView = BiomeView
	case "stream":
		app.currentView = StreamView
	case "saved":
		app.currentView = SavedView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "view", m.currentView)
	return m.getCurrentViewModel().Init()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.chunkExplorer.SetSize(msg.Width, msg.Height)
		m.biomes.SetSize(msg.Width, msg.Height)
		m.stream.SetSize(msg.Width, msg.Height)
		m.saved.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			// Outside the menu, q goes back
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.getCurrentViewModel().Init()
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.getCurrentViewModel().Init()
	}

	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	var cmd tea.Cmd
	switch m.currentView {
	case MenuView:
		var next tea.Model
		next, cmd = m.menu.Update(msg)
		m.menu = next.(MenuModel)
	case ChunkExplorerView:
		var next tea.Model
		next, cmd = m.chunkExplorer.Update(msg)
		m.chunkExplorer = next.(ChunkExplorerModel)
	case BiomeView:
		var next tea.Model
		next, cmd = m.biomes.Update(msg)
		m.biomes = next.(BiomeModel)
	case StreamView:
		var next tea.Model
		next, cmd = m.stream.Update(msg)
		m.stream = next.(StreamModel)
	case SavedView:
		var next tea.Model
		next, cmd = m.saved.Update(msg)
		m.saved = next.(SavedModel)
	}
	return m, cmd
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case ChunkExplorerView:
		return m.chunkExplorer.View()
	case BiomeView:
		return m.biomes.View()
	case StreamView:
		return m.stream.View()
	case SavedView:
		return m.saved.View()
	}

	return "Unknown view"
}

func (m *App) getCurrentViewModel() tea.Model {
	switch m.currentView {
	case ChunkExplorerView:
		return &m.chunkExplorer
	case BiomeView:
		return &m.biomes
	case StreamView:
		return &m.stream
	case SavedView:
		return &m.saved
	}
	return &m.menu
}

func (m *App) renderHelp() string {
	return `
+- strata debug tool - help ----------------------------+
|                                                       |
| Global keys:                                          |
|   q, Ctrl+C    Quit (from menu) / back to menu        |
|   ?            Toggle this help                       |
|   Tab          Cycle through views                    |
|   1-4          Select view (from menu)                |
|                                                       |
| Views:                                                |
|   1. Chunk Explorer  - generate and inspect a chunk   |
|   2. Biome Strip     - climate and blending along x   |
|   3. Stream Monitor  - window, queues and cache       |
|   4. Saved Chunks    - edited chunks in the database  |
|                                                       |
| Press ? again to close this help                      |
+-------------------------------------------------------+
`
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
