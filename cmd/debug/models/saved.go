package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/strata/cmd/debug/components"
	"github.com/VoidMesh/strata/internal/persistence"
)

// SavedModel lists the chunks persisted for the world seed.
type SavedModel struct {
	env    Env
	width  int
	height int

	rows     []persistence.Summary
	cursor   int
	loaded   bool
	errorMsg string
	message  string
}

func NewSavedModel(env Env) SavedModel {
	return SavedModel{env: env}
}

func (m SavedModel) Init() tea.Cmd {
	return m.listCmd()
}

func (m SavedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "r":
			return m, m.listCmd()
		case "x", "delete":
			if m.cursor < len(m.rows) {
				return m, m.deleteCmd(m.rows[m.cursor].Index)
			}
		}

	case savedListMsg:
		m.rows = msg.rows
		m.loaded = true
		m.errorMsg = ""
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}

	case savedDeletedMsg:
		m.message = fmt.Sprintf("Deleted chunk %d; it regenerates from the seed next time it streams in", msg.index)
		return m, m.listCmd()

	case savedErrorMsg:
		m.errorMsg = string(msg)
	}
	return m, nil
}

func (m SavedModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render(fmt.Sprintf("Saved Chunks - seed %d", m.env.Seed)) + "\n")

	switch {
	case m.env.Saved == nil:
		s.WriteString(components.BorderStyle.Render("No database. Start with -db <path> to inspect saved chunks.") + "\n")
	case m.errorMsg != "":
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n")
	case !m.loaded:
		s.WriteString(components.BorderStyle.Render("Loading...") + "\n")
	case len(m.rows) == 0:
		s.WriteString(components.BorderStyle.Render("No saved chunks for this seed") + "\n")
	default:
		s.WriteString(m.renderTable() + "\n")
	}

	if m.message != "" {
		s.WriteString(m.message + "\n")
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render("↑/↓ select • x delete • r refresh • q back"))
	return s.String()
}

func (m SavedModel) renderTable() string {
	header := fmt.Sprintf("%8s %6s %6s %8s  %s", "chunk", "width", "height", "bytes", "updated")
	lines := []string{components.TableHeaderStyle.Render(header)}
	for i, r := range m.rows {
		line := fmt.Sprintf("%8d %6d %6d %8d  %s", r.Index, r.Width, r.Height, r.Bytes, r.UpdatedAt.Local().Format(time.DateTime))
		style := components.TableCellStyle
		if i == m.cursor {
			style = components.TableSelectedCellStyle
		}
		lines = append(lines, style.Render(line))
	}
	return components.BorderStyle.Render(strings.Join(lines, "\n"))
}

// SetSize updates the saved view size
func (m *SavedModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m SavedModel) listCmd() tea.Cmd {
	saved, seed := m.env.Saved, m.env.Seed
	if saved == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := saved.List(ctx, seed)
		if err != nil {
			return savedErrorMsg(err.Error())
		}
		return savedListMsg{rows: rows}
	}
}

func (m SavedModel) deleteCmd(index int) tea.Cmd {
	saved, seed := m.env.Saved, m.env.Seed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := saved.Delete(ctx, seed, index); err != nil {
			return savedErrorMsg(err.Error())
		}
		return savedDeletedMsg{index: index}
	}
}

type savedListMsg struct {
	rows []persistence.Summary
}

type savedDeletedMsg struct {
	index int
}

type savedErrorMsg string
