package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/strata/cmd/debug/components"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/scheduler"
)

const streamRefresh = 200 * time.Millisecond

// StreamModel drives the world loop camera and shows what the store holds.
type StreamModel struct {
	env    Env
	width  int
	height int

	snapshot streamSnapshot
	errorMsg string
	message  string
}

type streamSnapshot struct {
	cameraX float64
	frames  uint64
	window  chunk.Window
	loaded  []int
	dirty   map[int]bool
	store   chunk.StoreStats
	sched   scheduler.Stats
	states  map[int]scheduler.State
}

func NewStreamModel(env Env) StreamModel {
	return StreamModel{env: env}
}

func (m StreamModel) Init() tea.Cmd {
	return tea.Batch(m.snapshotCmd(), m.tickCmd())
}

func (m StreamModel) chunkPixels() float64 {
	return float64(m.env.Width * m.env.TileSize)
}

func (m StreamModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m, m.moveCmd(m.snapshot.cameraX - m.chunkPixels()/4)
		case "right", "l":
			return m, m.moveCmd(m.snapshot.cameraX + m.chunkPixels()/4)
		case "H", "shift+left":
			return m, m.moveCmd(m.snapshot.cameraX - 4*m.chunkPixels())
		case "L", "shift+right":
			return m, m.moveCmd(m.snapshot.cameraX + 4*m.chunkPixels())
		case "0":
			return m, m.moveCmd(0)
		case "R":
			retried := 0
			sched := m.env.Loop.Scheduler()
			for index, state := range m.snapshot.states {
				if state == scheduler.Failed && sched.Retry(index) {
					retried++
				}
			}
			m.message = fmt.Sprintf("Retried %d failed chunks", retried)
			return m, nil
		}

	case streamSnapshotMsg:
		m.snapshot = msg.snapshot
		m.errorMsg = ""

	case streamErrorMsg:
		m.errorMsg = string(msg)

	case streamMovedMsg:
		return m, m.snapshotCmd()

	case streamTickMsg:
		return m, tea.Batch(m.snapshotCmd(), m.tickCmd())
	}
	return m, nil
}

func (m StreamModel) View() string {
	snap := m.snapshot

	var s strings.Builder
	s.WriteString(components.TitleStyle.Render(fmt.Sprintf("Stream Monitor - camera x %.0f", snap.cameraX)) + "\n")

	var strip strings.Builder
	lo, hi := snap.window.Left-3, snap.window.Right+3
	loaded := make(map[int]bool, len(snap.loaded))
	for _, i := range snap.loaded {
		loaded[i] = true
	}
	for i := lo; i <= hi; i++ {
		label := fmt.Sprintf("%4d", i)
		style := lipgloss.NewStyle().Foreground(components.StateColor(snap.states[i].String()))
		switch {
		case loaded[i] && snap.dirty[i]:
			style = style.Bold(true).Underline(true)
		case loaded[i]:
			style = style.Bold(true)
		}
		if snap.window.Contains(i) {
			style = style.Background(components.DarkGray)
		}
		strip.WriteString(style.Render(label))
	}
	s.WriteString(components.BorderStyle.Render(strip.String()) + "\n")

	var info strings.Builder
	info.WriteString(components.SubtitleStyle.Render("Store") + "\n")
	info.WriteString(fmt.Sprintf("Window:     [%d, %d]\n", snap.window.Left, snap.window.Right))
	info.WriteString(fmt.Sprintf("Loaded:     %d\n", snap.store.Loaded))
	info.WriteString(fmt.Sprintf("Edited:     %d\n", snap.store.Edited))
	info.WriteString(fmt.Sprintf("Requested:  %d  Evicted: %d\n", snap.store.Requested, snap.store.Evicted))
	info.WriteString(fmt.Sprintf("Cache:      %d hits, %d misses\n", snap.store.CacheHits, snap.store.CacheMisses))
	info.WriteString(fmt.Sprintf("Frames:     %d\n", snap.frames))
	info.WriteString("\n" + components.SubtitleStyle.Render("Scheduler") + "\n")
	info.WriteString(fmt.Sprintf("Queued %d  In progress %d\n", snap.sched.Queued, snap.sched.InProgress))
	info.WriteString(fmt.Sprintf("Completed %d  Failed %d\n", snap.sched.Completed, snap.sched.Failed))
	info.WriteString(fmt.Sprintf("Generated %d  Failures %d\n", snap.sched.Generated, snap.sched.Failures))
	s.WriteString(components.InfoPanelStyle.Width(48).Render(info.String()) + "\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n")
	} else if m.message != "" {
		s.WriteString(m.message + "\n")
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render("←/→ pan • H/L jump 4 chunks • 0 origin • R retry failed • q back"))
	return s.String()
}

// SetSize updates the stream monitor size
func (m *StreamModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m StreamModel) moveCmd(x float64) tea.Cmd {
	loop := m.env.Loop
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := loop.SetCamera(ctx, x); err != nil {
			return streamErrorMsg(err.Error())
		}
		return streamMovedMsg{}
	}
}

func (m StreamModel) snapshotCmd() tea.Cmd {
	loop := m.env.Loop
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		snap := streamSnapshot{dirty: make(map[int]bool), states: make(map[int]scheduler.State)}
		err := loop.Do(ctx, func(s *chunk.Store) {
			snap.window = s.Window()
			snap.loaded = s.Indices()
			snap.store = s.Stats()
			for _, i := range snap.loaded {
				snap.dirty[i] = s.Dirty(i)
			}
		})
		if err == nil {
			snap.cameraX, snap.frames, err = loop.Camera(ctx)
		}
		if err != nil {
			return streamErrorMsg(err.Error())
		}

		sched := loop.Scheduler()
		snap.sched = sched.Stats()
		for i := snap.window.Left - 3; i <= snap.window.Right+3; i++ {
			snap.states[i] = sched.State(i)
		}
		return streamSnapshotMsg{snapshot: snap}
	}
}

func (m StreamModel) tickCmd() tea.Cmd {
	return tea.Tick(streamRefresh, func(time.Time) tea.Msg {
		return streamTickMsg{}
	})
}

type streamSnapshotMsg struct {
	snapshot streamSnapshot
}

type streamErrorMsg string

type streamTickMsg struct{}

type streamMovedMsg struct{}
