package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options configures a play session.
type Options struct {
	// Piece is the fixed-mode kind letter, recorded with the session.
	Piece string

	Config  config.TetrisConfig
	Runtime core.RuntimeConfig

	// Store receives the session recording on exit. Nil disables recording.
	Store  *storage.Store
	Logger *log.Logger
}

// Model is the Bubble Tea model for a tetris session. Update is the only
// place the game is stepped, so the simulation has a single writer.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	keys       KeyMap
	help       help.Model
	difficulty *config.DifficultyManager
	recorder   *replay.Recorder
	logger     *log.Logger

	state    core.GameState
	seq      int
	anyLock  bool
	overSeen bool
	quitting bool
	savedID  int64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) *Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return &Model{
		game:       game,
		screen:     core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       h,
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		recorder:   replay.NewRecorder(game.ID(), opts.Piece, opts.Runtime),
		logger:     logger,
	}
}

// Init starts the game and the gravity timer.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.opts.Runtime)
	m.state = m.game.State()
	m.logger.Info("session started",
		"mode", m.game.ID(),
		"seed", m.opts.Runtime.Seed,
		"board", [2]int{m.opts.Runtime.BoardW, m.opts.Runtime.BoardH},
	)
	return gravityCmd(m.gravityInterval(), m.seq)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case GravityMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.step(core.GravityTick())
		return m, gravityCmd(m.gravityInterval(), m.seq)
	}

	return m, nil
}

// handleKey turns one key press into one input tick.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}

	wasOver := m.state.GameOver
	m.step(core.InputTick(action))

	if wasOver && !m.state.GameOver {
		// Restarted: begin a fresh gravity chain at the base interval.
		m.seq++
		m.overSeen = false
		return m, gravityCmd(m.gravityInterval(), m.seq)
	}
	return m, nil
}

// step delivers one tick to the game and records it.
func (m *Model) step(t core.Tick) {
	res := m.game.Step(t)
	m.recorder.Record(t)
	m.state = res.State
	if res.Locked {
		m.anyLock = true
		if len(res.Cleared) > 0 {
			m.logger.Debug("rows cleared", "rows", res.Cleared, "lines", m.state.Lines)
		}
	}
	if m.state.GameOver && !m.overSeen {
		m.overSeen = true
		m.logger.Info("game over",
			"mode", m.game.ID(),
			"score", m.state.Score,
			"lines", m.state.Lines,
			"pieces", m.state.Pieces,
		)
	}
}

func (m *Model) gravityInterval() time.Duration {
	base := m.opts.Config.Timing.Gravity()
	if base <= 0 {
		base = time.Second
	}
	return m.difficulty.GravityInterval(base, m.state.Lines, m.state.Pieces)
}

// finish stores the session recording, once.
func (m *Model) finish() {
	if m.savedID != 0 || m.opts.Store == nil || !m.anyLock {
		return
	}
	rec := m.recorder.Recording(m.state)
	id, err := m.opts.Store.SaveRecording(rec)
	if err != nil {
		m.logger.Error("could not save recording", "error", err)
		return
	}
	m.savedID = id
	m.logger.Info("recording saved", "id", id, "ticks", rec.TickCount(), "score", rec.Score)
}

// RecordingID returns the ID of the saved recording, or 0 if none was saved.
func (m *Model) RecordingID() int64 {
	return m.savedID
}

// State returns the last observed game state.
func (m *Model) State() core.GameState {
	return m.state
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for one session and returns the final
// model.
func Run(game registry.Game, opts Options) (*Model, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	// Interrupted programs still store what was played.
	model.finish()
	return model, err
}
