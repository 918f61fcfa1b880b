package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecording(mode string, score int) Recording {
	return Recording{
		Mode:      mode,
		Seed:      42,
		Width:     10,
		Height:    20,
		QueueSize: 3,
		Ticks:     "gglrhg.d",
		Score:     score,
		Lines:     score / 100,
		Pieces:    2,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRecording(sampleRecording("classic", 50))
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Recording(id); err != nil {
		t.Errorf("Recording(%d) after reopen failed: %v", id, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := sampleRecording("fixed", 225)
	want.Piece = "T"

	id, err := store.SaveRecording(want)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive ID, got %d", id)
	}

	got, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Mode != want.Mode || got.Piece != want.Piece {
		t.Errorf("mode/piece = %s/%s, want %s/%s", got.Mode, got.Piece, want.Mode, want.Piece)
	}
	if got.Seed != want.Seed || got.Width != want.Width || got.Height != want.Height || got.QueueSize != want.QueueSize {
		t.Errorf("setup mismatch: got %+v", got)
	}
	if got.Ticks != want.Ticks {
		t.Errorf("Ticks = %q, want %q", got.Ticks, want.Ticks)
	}
	if got.TickCount() != len(want.Ticks) {
		t.Errorf("TickCount() = %d, want %d", got.TickCount(), len(want.Ticks))
	}
	if got.Score != 225 || got.Lines != 2 || got.Pieces != 2 {
		t.Errorf("result = %d/%d/%d, want 225/2/2", got.Score, got.Lines, got.Pieces)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Recording(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreLongTickLog(t *testing.T) {
	store := openTestStore(t)

	rec := sampleRecording("classic", 0)
	rec.Ticks = strings.Repeat("g.lrudh", 20000)

	id, err := store.SaveRecording(rec)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	got, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if got.Ticks != rec.Ticks {
		t.Errorf("tick log of %d chars came back as %d chars", len(rec.Ticks), len(got.Ticks))
	}
}

func TestStoreRecentRecordings(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRecording(sampleRecording("classic", i*100)); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}
	if _, err := store.SaveRecording(sampleRecording("blind", 999)); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	all, err := store.RecentRecordings("", 10)
	if err != nil {
		t.Fatalf("RecentRecordings() failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("Expected 6 recordings, got %d", len(all))
	}
	// Same timestamp resolution, so newest first falls back to ID order.
	if all[0].Mode != "blind" {
		t.Errorf("Expected newest recording first, got %s", all[0].Mode)
	}

	classic, err := store.RecentRecordings("classic", 3)
	if err != nil {
		t.Fatalf("RecentRecordings() failed: %v", err)
	}
	if len(classic) != 3 {
		t.Fatalf("Expected 3 classic recordings with limit, got %d", len(classic))
	}
	for _, r := range classic {
		if r.Mode != "classic" {
			t.Errorf("mode filter leaked %s", r.Mode)
		}
	}
	if classic[0].Score != 400 {
		t.Errorf("Expected newest classic score 400, got %d", classic[0].Score)
	}
}

func TestStoreDeleteRecording(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.SaveRecording(sampleRecording("classic", 100))
	keep, _ := store.SaveRecording(sampleRecording("classic", 200))

	if err := store.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}
	if _, err := store.Recording(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted recording still readable: %v", err)
	}
	if _, err := store.Recording(keep); err != nil {
		t.Errorf("other recording affected by delete: %v", err)
	}
	if err := store.DeleteRecording(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecording(sampleRecording("classic", 100))
	store.SaveRecording(sampleRecording("classic", 200))
	store.SaveRecording(sampleRecording("blind", 300))

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(stats))
	}
	classic := stats["classic"]
	if classic == nil || classic.Sessions != 2 {
		t.Fatalf("classic stats = %+v, want 2 sessions", classic)
	}
	if classic.TotalTicks != int64(2*len("gglrhg.d")) {
		t.Errorf("TotalTicks = %d", classic.TotalTicks)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	got, err := ExpandPath("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandPath("~/.tetris/recordings.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".tetris", "recordings.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
}
