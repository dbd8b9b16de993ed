package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/strata/cmd/debug/components"
	"github.com/VoidMesh/strata/internal/biome"
)

// BiomeModel draws the biome field along a horizontal strip of world x.
type BiomeModel struct {
	env Env

	originX float64
	step    float64
	cursor  int
	width   int
	height  int
}

func NewBiomeModel(env Env) BiomeModel {
	return BiomeModel{env: env, step: 16}
}

func (m BiomeModel) Init() tea.Cmd {
	return nil
}

func (m BiomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.originX -= m.step
			}
		case "right", "l":
			if m.cursor < m.columns()-1 {
				m.cursor++
			} else {
				m.originX += m.step
			}
		case "H", "shift+left":
			m.originX -= m.step * float64(m.columns())
		case "L", "shift+right":
			m.originX += m.step * float64(m.columns())
		case "+", "=":
			if m.step > 1 {
				m.step /= 2
			}
		case "-":
			m.step *= 2
		case "0":
			m.originX, m.cursor = 0, 0
		}
	}
	return m, nil
}

func (m BiomeModel) columns() int {
	cols := m.width - 4
	if cols < 10 {
		cols = 10
	}
	return cols
}

func (m BiomeModel) xAt(col int) float64 {
	return m.originX + float64(col)*m.step
}

func (m BiomeModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	cols := m.columns()
	samples := make([]biome.Blended, cols)
	for i := range samples {
		samples[i] = m.env.Biomes.Sample(m.xAt(i))
	}

	var primary, secondary, factor, temp strings.Builder
	for i, b := range samples {
		cell := lipgloss.NewStyle().Background(components.BiomeColor(b.Primary))
		if i == m.cursor {
			cell = components.CursorStyle
		}
		primary.WriteString(cell.Render(" "))
		secondary.WriteString(lipgloss.NewStyle().Background(components.BiomeColor(b.Secondary)).Render(" "))
		factor.WriteString(bar(b.Factor / 0.5))
		temp.WriteString(bar(b.Temperature))
	}

	strip := strings.Join([]string{
		"primary",
		primary.String(),
		"secondary",
		secondary.String(),
		"blend factor",
		factor.String(),
		"temperature",
		temp.String(),
	}, "\n")

	var s strings.Builder
	s.WriteString(components.TitleStyle.Render(fmt.Sprintf("Biome Strip - x from %.0f, %.0f per column", m.originX, m.step)) + "\n")
	s.WriteString(components.BorderStyle.Render(strip) + "\n")
	s.WriteString(m.renderInfo(samples[m.cursor]) + "\n")
	s.WriteString(components.StatusBarStyle.Width(m.width).Render("←/→ move • H/L page • +/- zoom • 0 origin • q back"))
	return s.String()
}

func (m BiomeModel) renderInfo(b biome.Blended) string {
	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render(fmt.Sprintf("World x %.0f", m.xAt(m.cursor))) + "\n")
	info.WriteString(fmt.Sprintf("Primary:    %s\n", b.Primary))
	info.WriteString(fmt.Sprintf("Secondary:  %s (factor %.3f)\n", b.Secondary, b.Factor))
	info.WriteString(fmt.Sprintf("Climate:    temp %.3f, humidity %.3f\n", b.Temperature, b.Humidity))
	info.WriteString(fmt.Sprintf("Height mod: %.3f\n", b.HeightMod))
	info.WriteString(fmt.Sprintf("Trees:      %s, chance %.3f\n", b.Tree, b.TreeChance))

	legend := make([]string, 0, 4)
	for _, kind := range []biome.Biome{biome.Plains, biome.Snowy, biome.Desert, biome.Savanna} {
		swatch := lipgloss.NewStyle().Background(components.BiomeColor(kind)).Render("  ")
		legend = append(legend, swatch+" "+kind.String())
	}
	info.WriteString("\n" + strings.Join(legend, "   "))
	return components.BorderStyle.Render(info.String())
}

var barLevels = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

func bar(v float64) string {
	v = max(0, min(1, v))
	return barLevels[int(v*float64(len(barLevels)-1)+0.5)]
}

// SetSize updates the biome view size
func (m *BiomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.cursor >= m.columns() {
		m.cursor = m.columns() - 1
	}
}
