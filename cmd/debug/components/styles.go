package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Scheduler state colors
	QueuedColor     = lipgloss.Color("#FFA500") // Orange
	InProgressColor = lipgloss.Color("#00BFFF") // DeepSkyBlue
	CompletedColor  = lipgloss.Color("#00FF00") // Lime
	FailedColor     = lipgloss.Color("#FF0000") // Red
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(0, 1)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(34)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	TableSelectedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(lipgloss.Color("#FAFAFA"))
)

// Block symbols
const (
	EmptySymbol  = " "
	CursorSymbol = "+"
)

var blockSymbols = map[string]string{
	block.NameAir:         EmptySymbol,
	block.NameWater:       "~",
	block.NameUnbreakable: "=",
	block.NameGrass:       "\"",
	block.NameSnowyGrass:  "*",
	block.NameDirt:        ":",
	block.NameSand:        ".",
	block.NameSandstone:   "_",
	block.NameStone:       "#",
	block.NameCoalOre:     "c",
	block.NameIronOre:     "i",
	block.NameGoldOre:     "g",
	block.NameWood:        "|",
	block.NameLeaves:      "%",
	block.NameLeavesLight: "%",
	block.NameLeavesDark:  "%",
	block.NameDungeonWall: "H",
	block.NameSpawner:     "S",
	block.NameStorage:     "C",
	block.NameFurnace:     "F",
}

var blockColors = map[string]lipgloss.Color{
	block.NameWater:       lipgloss.Color("#3F76E4"),
	block.NameUnbreakable: lipgloss.Color("#FAFAFA"),
	block.NameDirt:        lipgloss.Color("#8B5A2B"),
	block.NameSand:        lipgloss.Color("#E1C882"),
	block.NameSandstone:   lipgloss.Color("#C2A35E"),
	block.NameStone:       lipgloss.Color("#696969"),
	block.NameCoalOre:     lipgloss.Color("#2B2B2B"),
	block.NameIronOre:     lipgloss.Color("#C0C0C0"),
	block.NameGoldOre:     AccentColor,
	block.NameWood:        lipgloss.Color("#8B4513"),
	block.NameLeaves:      lipgloss.Color("#3C8C28"),
	block.NameLeavesLight: lipgloss.Color("#7CC850"),
	block.NameLeavesDark:  lipgloss.Color("#1E5A14"),
	block.NameDungeonWall: lipgloss.Color("#7A4E3A"),
	block.NameSpawner:     DangerColor,
	block.NameStorage:     AccentColor,
	block.NameFurnace:     lipgloss.Color("#FF8C00"),
}

// BlockSymbol returns the glyph drawn for a block name. Unknown names draw "?".
func BlockSymbol(name string) string {
	if s, ok := blockSymbols[name]; ok {
		return s
	}
	return "?"
}

// BlockColor returns the foreground for a block. Grass-like surfaces take the
// biome tint of their column.
func BlockColor(name string, tint biome.Color) lipgloss.Color {
	if name == block.NameGrass || name == block.NameSnowyGrass {
		return TintColor(tint)
	}
	if c, ok := blockColors[name]; ok {
		return c
	}
	return Gray
}

// TintColor converts a biome tint to a terminal color.
func TintColor(c biome.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// BiomeColor is the legend color of a biome.
func BiomeColor(b biome.Biome) lipgloss.Color {
	return TintColor(biome.DefaultProfiles()[b].Tint)
}

// StateColor colors a scheduler state name.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "queued":
		return QueuedColor
	case "in_progress":
		return InProgressColor
	case "completed":
		return CompletedColor
	case "failed":
		return FailedColor
	}
	return Gray
}

// Layout helpers
func CenterText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}

func LeftText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Left).Render(text)
}
