package replay

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recorder captures every tick delivered to a game together with the setup
// needed to reproduce it.
type Recorder struct {
	mode  string
	piece string
	cfg   core.RuntimeConfig
	ticks []byte
}

// NewRecorder starts a recording for a session of the given mode. piece is
// the fixed-mode kind letter, empty for random modes.
func NewRecorder(mode, piece string, cfg core.RuntimeConfig) *Recorder {
	return &Recorder{mode: mode, piece: piece, cfg: cfg}
}

// Record appends one tick.
func (r *Recorder) Record(t core.Tick) {
	r.ticks = append(r.ticks, EncodeTick(t))
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.ticks)
}

// Recording builds the storable recording, tagged with the final state.
// When the session restarted, that is the state of its last round.
func (r *Recorder) Recording(final core.GameState) storage.Recording {
	return storage.Recording{
		Mode:      r.mode,
		Piece:     r.piece,
		Seed:      r.cfg.Seed,
		Width:     r.cfg.BoardW,
		Height:    r.cfg.BoardH,
		QueueSize: r.cfg.QueueSize,
		Ticks:     string(r.ticks),
		Score:     final.Score,
		Lines:     final.Lines,
		Pieces:    final.Pieces,
	}
}
