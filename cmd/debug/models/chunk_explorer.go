package models

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/strata/cmd/debug/components"
	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/structure"
)

// ChunkExplorerModel generates one chunk at a time and shows it cell by cell.
type ChunkExplorerModel struct {
	env Env

	index    int
	seed     int64
	dungeons bool
	cursorX  int
	cursorY  int
	scrollY  int
	width    int
	height   int

	chunk    *chunk.Chunk
	columns  []biome.Blended
	rooms    []structure.Room
	genTime  time.Duration
	errorMsg string
}

// NewChunkExplorerModel creates a new chunk explorer model
func NewChunkExplorerModel(env Env) ChunkExplorerModel {
	return ChunkExplorerModel{
		env:     env,
		seed:    env.Seed,
		cursorX: env.Width / 2,
	}
}

func (m ChunkExplorerModel) Init() tea.Cmd {
	return m.generateCmd()
}

func (m ChunkExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursorY > 0 {
				m.cursorY--
			}
		case "down", "j":
			if m.cursorY < m.env.Height-1 {
				m.cursorY++
			}
		case "left", "h":
			if m.cursorX > 0 {
				m.cursorX--
			}
		case "right", "l":
			if m.cursorX < m.env.Width-1 {
				m.cursorX++
			}

		case "shift+left", "H":
			m.index--
			return m, m.generateCmd()
		case "shift+right", "L":
			m.index++
			return m, m.generateCmd()

		case "s":
			m.seed++
			return m, m.generateCmd()
		case "S":
			m.seed--
			return m, m.generateCmd()
		case "d":
			m.dungeons = !m.dungeons
			return m, m.generateCmd()
		case "g":
			// Jump to the surface of the cursor column
			if m.chunk != nil {
				m.cursorY = m.chunk.Surface[m.cursorX]
			}
		case "r":
			return m, m.generateCmd()
		}
		m.scroll()

	case chunkGeneratedMsg:
		m.chunk = msg.chunk
		m.columns = msg.columns
		m.rooms = msg.rooms
		m.genTime = msg.took
		m.errorMsg = ""
		if m.cursorY == 0 {
			m.cursorY = m.chunk.Surface[m.cursorX]
		}
		m.scroll()
	}

	return m, nil
}

// gridRows is how many chunk rows fit on screen.
func (m ChunkExplorerModel) gridRows() int {
	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	return rows
}

// scroll keeps the cursor inside the visible rows.
func (m *ChunkExplorerModel) scroll() {
	rows := m.gridRows()
	if m.cursorY < m.scrollY {
		m.scrollY = m.cursorY
	}
	if m.cursorY >= m.scrollY+rows {
		m.scrollY = m.cursorY - rows + 1
	}
}

func (m ChunkExplorerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	title := fmt.Sprintf("Chunk Explorer - chunk %d, seed %d", m.index, m.seed)
	s.WriteString(components.TitleStyle.Render(title) + "\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), m.renderInfoPanel()) + "\n")
	s.WriteString(m.renderStatusBar())
	return s.String()
}

func (m ChunkExplorerModel) renderGrid() string {
	if m.chunk == nil {
		if m.errorMsg != "" {
			return components.BorderStyle.Render("Error: " + m.errorMsg)
		}
		return components.BorderStyle.Render("Generating...")
	}

	last := min(m.scrollY+m.gridRows(), m.chunk.Height)
	rows := make([]string, 0, last-m.scrollY)
	for y := m.scrollY; y < last; y++ {
		var row strings.Builder
		for x := 0; x < m.chunk.Width; x++ {
			name := m.blockName(x, y)
			symbol := components.BlockSymbol(name)
			style := lipgloss.NewStyle().Foreground(components.BlockColor(name, m.columns[x].Tint))
			if x == m.cursorX && y == m.cursorY {
				style = components.CursorStyle
				if symbol == components.EmptySymbol {
					symbol = components.CursorSymbol
				}
			}
			row.WriteString(style.Render(symbol))
		}
		rows = append(rows, row.String())
	}
	return components.BorderStyle.Render(strings.Join(rows, "\n"))
}

func (m ChunkExplorerModel) blockName(x, y int) string {
	def, err := m.env.Catalog.Resolve(m.chunk.At(x, y))
	if err != nil {
		return ""
	}
	return def.Name
}

func (m ChunkExplorerModel) renderInfoPanel() string {
	var info strings.Builder

	info.WriteString(components.SubtitleStyle.Render("Position") + "\n")
	info.WriteString(fmt.Sprintf("Local: (%d, %d)\n", m.cursorX, m.cursorY))
	if m.chunk != nil {
		info.WriteString(fmt.Sprintf("World x: %d\n", m.chunk.OriginX()+m.cursorX))
		info.WriteString(fmt.Sprintf("Block: %s\n", m.blockName(m.cursorX, m.cursorY)))
		if inst := m.chunk.Instance(m.cursorX, m.cursorY); inst != nil {
			info.WriteString(fmt.Sprintf("Instance: %s\n", inst.Kind()))
			if inv, ok := inst.Inventory(); ok {
				for _, st := range inv.Items() {
					info.WriteString(fmt.Sprintf("  %d x %s\n", st.Count, st.Item))
				}
			}
		}
		info.WriteString(fmt.Sprintf("Surface row: %d\n", m.chunk.Surface[m.cursorX]))

		b := m.columns[m.cursorX]
		info.WriteString("\n" + components.SubtitleStyle.Render("Biome") + "\n")
		info.WriteString(lipgloss.NewStyle().Foreground(components.BiomeColor(b.Primary)).Render(b.Primary.String()))
		info.WriteString(fmt.Sprintf(" -> %s (%.2f)\n", b.Secondary, b.Factor))
		info.WriteString(fmt.Sprintf("Temp %.2f  Hum %.2f\n", b.Temperature, b.Humidity))
		info.WriteString(fmt.Sprintf("Trees: %s (%.2f)\n", b.Tree, b.TreeChance))

		if len(m.rooms) > 0 {
			info.WriteString("\n" + components.SubtitleStyle.Render("Dungeon") + "\n")
			for i, r := range m.rooms {
				info.WriteString(fmt.Sprintf("%d. %s at (%d,%d) %s\n", i+1, r.Kind, r.X, r.Y, r.From))
			}
		}
	}

	info.WriteString("\n" + components.SubtitleStyle.Render("Controls") + "\n")
	info.WriteString("Arrows/hjkl: move cursor\n")
	info.WriteString("H/L: previous/next chunk\n")
	info.WriteString("s/S: next/previous seed\n")
	info.WriteString("d: toggle dungeons  g: surface\n")
	info.WriteString("r: regenerate  q: back\n")

	return components.InfoPanelStyle.Render(info.String())
}

func (m ChunkExplorerModel) renderStatusBar() string {
	status := []string{
		fmt.Sprintf("Size: %dx%d", m.env.Width, m.env.Height),
		fmt.Sprintf("Rows %d-%d", m.scrollY, min(m.scrollY+m.gridRows(), m.env.Height)-1),
	}
	if m.dungeons {
		status = append(status, "Dungeons: ON")
	} else {
		status = append(status, "Dungeons: OFF")
	}
	if m.genTime > 0 {
		status = append(status, fmt.Sprintf("Generated in %s", m.genTime.Round(time.Microsecond)))
	}
	return components.StatusBarStyle.Width(m.width).Render(strings.Join(status, " • "))
}

// SetSize updates the chunk explorer size
func (m *ChunkExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll()
}

func (m ChunkExplorerModel) generateCmd() tea.Cmd {
	env, index, seed, dungeons := m.env, m.index, m.seed, m.dungeons
	return func() tea.Msg {
		start := time.Now()
		c := env.Synth.Generate(index, env.Width, env.Height, seed)

		var rooms []structure.Room
		if dungeons {
			startX := structure.Site(seed, index, env.Width, env.RoomSize)
			rooms = env.Carver.Carve(c, startX, 0)
		}
		took := time.Since(start)

		columns := make([]biome.Blended, c.Width)
		for x := range columns {
			columns[x] = env.Biomes.Sample(float64(c.OriginX() + x))
		}
		return chunkGeneratedMsg{chunk: c, columns: columns, rooms: rooms, took: took}
	}
}

type chunkGeneratedMsg struct {
	chunk   *chunk.Chunk
	columns []biome.Blended
	rooms   []structure.Room
	took    time.Duration
}
