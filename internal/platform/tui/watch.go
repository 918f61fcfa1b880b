package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// Replay speed bounds, in ticks per second.
const (
	minReplayRate     = 1
	maxReplayRate     = 240
	defaultReplayRate = 20
)

// WatchKeyMap defines the key bindings while watching a replay.
type WatchKeyMap struct {
	Toggle key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "p")),
		Faster: key.NewBinding(key.WithKeys("+", "=", "right")),
		Slower: key.NewBinding(key.WithKeys("-", "left")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// WatchModel animates a recorded session.
type WatchModel struct {
	player *replay.Player
	screen *core.Screen
	keys   WatchKeyMap
	id     int64
	rate   int
	paused bool
	done   bool
}

// NewWatchModel creates a watcher for the given player.
func NewWatchModel(player *replay.Player, id int64, width, height int) *WatchModel {
	return &WatchModel{
		player: player,
		screen: core.NewScreen(width, max(height-1, 1)),
		keys:   DefaultWatchKeyMap(),
		id:     id,
		rate:   defaultReplayRate,
	}
}

func (m *WatchModel) interval() time.Duration {
	return time.Second / time.Duration(m.rate)
}

// Init starts the frame timer.
func (m *WatchModel) Init() tea.Cmd {
	return frameCmd(m.interval())
}

// Update handles messages for the watcher.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.rate = core.Clamp(m.rate*2, minReplayRate, maxReplayRate)
		case key.Matches(msg, m.keys.Slower):
			m.rate = core.Clamp(m.rate/2, minReplayRate, maxReplayRate)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		return m, nil

	case FrameMsg:
		if !m.paused && !m.done {
			if _, ok := m.player.Next(); !ok {
				m.done = true
			}
		}
		return m, frameCmd(m.interval())
	}

	return m, nil
}

var watchStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// View renders the replayed game and a status line.
func (m *WatchModel) View() string {
	m.player.Game().Render(m.screen)

	pos, total := m.player.Progress()
	status := fmt.Sprintf("replay #%d  tick %d/%d  %d/s", m.id, pos, total, m.rate)
	switch {
	case m.done:
		status += "  [end]"
	case m.paused:
		status += "  [paused]"
	}
	status += "  space: pause  +/-: speed  q: quit"

	return RenderScreen(m.screen) + "\n" + watchStatusStyle.Render(status)
}

// RunWatch animates a recording until the user quits.
func RunWatch(player *replay.Player, id int64, width, height int) error {
	p := tea.NewProgram(
		NewWatchModel(player, id, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
