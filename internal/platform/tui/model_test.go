package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) *Model {
	t.Helper()
	cfg := config.DefaultTetrisConfig()
	m := NewModel(tetris.NewClassic(), Options{
		Config:  cfg,
		Runtime: cfg.Runtime(80, 25, 1234),
		Store:   store,
	})
	require.NotNil(t, m.Init())
	return m
}

func TestModelStepsOnKeysAndGravity(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 1, m.State().Pieces)
	assert.Equal(t, tetris.LockPoints, m.State().Score)

	_, cmd := m.Update(GravityMsg{Seq: m.seq})
	assert.NotNil(t, cmd, "gravity reschedules itself")

	_, cmd = m.Update(GravityMsg{Seq: m.seq + 1})
	assert.Nil(t, cmd, "stale gravity chains stop")

	_, cmd = m.Update(runeKey('z'))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.recorder.Len(), "unbound keys are not recorded")
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})

	out := m.View()
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "hard drop")
}

func TestModelQuitSavesReplayableRecording(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestModel(t, store)
	for i := 0; i < 5; i++ {
		m.Update(GravityMsg{Seq: m.seq})
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m.Update(tea.KeyMsg{Type: tea.KeySpace})
	}

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	require.NotZero(t, m.RecordingID())
	assert.Empty(t, m.View())

	rec, err := store.Recording(m.RecordingID())
	require.NoError(t, err)
	assert.Equal(t, "classic", rec.Mode)
	assert.Equal(t, int64(1234), rec.Seed)
	assert.Equal(t, 15, rec.TickCount())
	assert.Equal(t, m.State().Score, rec.Score)

	_, err = replay.Verify(rec)
	assert.NoError(t, err)

	// Quitting twice does not store a second copy.
	m.finish()
	recs, err := store.RecentRecordings("", 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestModelSkipsEmptySessions(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestModel(t, store)
	m.Update(GravityMsg{Seq: m.seq})
	m.Update(runeKey('q'))

	assert.Zero(t, m.RecordingID())
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hello")
	s.DrawTextColored(0, 1, "world", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "hello")
	assert.Contains(t, lines[1], "world")
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		_, ok := colorStyles[c]
		assert.True(t, ok, "color %d has no style", c)
	}
}
