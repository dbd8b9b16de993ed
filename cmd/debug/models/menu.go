package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/strata/cmd/debug/components"
)

// MenuModel handles the main menu view
type MenuModel struct {
	choices []MenuChoice
	cursor  int
	width   int
	height  int
}

// MenuChoice represents a menu option
type MenuChoice struct {
	Title       string
	Description string
	View        ViewType
}

func NewMenuModel() MenuModel {
	return MenuModel{
		choices: []MenuChoice{
			{Title: "Chunk Explorer", Description: "Generate a chunk and inspect its cells", View: ChunkExplorerView},
			{Title: "Biome Strip", Description: "Climate and blending along the x axis", View: BiomeView},
			{Title: "Stream Monitor", Description: "Move the camera and watch chunks stream", View: StreamView},
			{Title: "Saved Chunks", Description: "Edited chunks kept in the database", View: SavedView},
		},
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.choices) - 1
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case "enter", " ":
			selected := m.choices[m.cursor]
			return m, func() tea.Msg {
				return NewSwitchViewMsg(selected.View)
			}

		case "1", "2", "3", "4":
			choice := int(msg.String()[0] - '1')
			if choice < len(m.choices) {
				m.cursor = choice
				selected := m.choices[m.cursor]
				return m, func() tea.Msg {
					return NewSwitchViewMsg(selected.View)
				}
			}
		}
	}

	return m, nil
}

func (m MenuModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("strata debug tool") + "\n\n")

	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.PrimaryColor).
		Padding(1, 2).
		Width(70)

	var items []string
	for i, choice := range m.choices {
		itemStyle := components.MenuItemStyle
		if i == m.cursor {
			itemStyle = components.SelectedMenuItemStyle
		}
		item := fmt.Sprintf("%-3s %-18s %s", fmt.Sprintf("%d.", i+1), choice.Title, choice.Description)
		items = append(items, itemStyle.Render(item))
	}
	s.WriteString(menuStyle.Render(strings.Join(items, "\n")) + "\n\n")

	s.WriteString(components.HelpStyle.Render(
		"Use ↑/↓ or j/k to navigate • Enter or number to select • ? for help • q to quit",
	))

	content := s.String()
	if m.width > 0 {
		if w := lipgloss.Width(content); w < m.width {
			content = lipgloss.NewStyle().PaddingLeft((m.width - w) / 2).Render(content)
		}
	}
	return content
}

// SetSize updates the menu size
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
