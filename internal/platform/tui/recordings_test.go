package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type fakeRecordingStore struct {
	recs    []storage.Recording
	deleted []int64
}

func (f *fakeRecordingStore) RecentRecordings(mode string, limit int) ([]storage.Recording, error) {
	var out []storage.Recording
	for _, r := range f.recs {
		if mode == "" || r.Mode == mode {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordingStore) DeleteRecording(id int64) error {
	f.deleted = append(f.deleted, id)
	kept := f.recs[:0]
	for _, r := range f.recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.recs = kept
	return nil
}

func newFakeStore() *fakeRecordingStore {
	now := time.Now()
	return &fakeRecordingStore{recs: []storage.Recording{
		{ID: 7, Mode: "classic", Ticks: "ggh", Score: 25, Pieces: 1, CreatedAt: now},
		{ID: 5, Mode: "fixed", Piece: "I", Ticks: "h", Score: 125, Lines: 1, Pieces: 1, CreatedAt: now},
	}}
}

func TestBrowserSelectsRecording(t *testing.T) {
	m := NewBrowserModel(newFakeStore(), 100, 30)
	require.Len(t, m.recordings, 2)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, int64(7), next.(BrowserModel).Selected())
}

func TestBrowserFiltersByMode(t *testing.T) {
	m := NewBrowserModel(newFakeStore(), 100, 30)

	// Cycle until the fixed mode is selected.
	for m.currentMode() != "fixed" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(BrowserModel)
	}
	require.Len(t, m.recordings, 1)
	assert.Equal(t, int64(5), m.recordings[0].ID)
	assert.Contains(t, m.View(), "fixed")
}

func TestBrowserDelete(t *testing.T) {
	store := newFakeStore()
	m := NewBrowserModel(store, 60, 30)

	next, _ := m.Update(runeKey('x'))
	m = next.(BrowserModel)

	assert.Equal(t, []int64{7}, store.deleted)
	assert.Len(t, m.recordings, 1)
	assert.Contains(t, m.View(), "deleted recording 7")
}

func TestBrowserEmpty(t *testing.T) {
	m := NewBrowserModel(&fakeRecordingStore{}, 100, 30)
	assert.Contains(t, m.View(), "No recordings yet")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Zero(t, next.(BrowserModel).Selected())
}
