package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	// Register the modes recordings refer to.
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ErrMismatch is returned by Verify when re-simulation does not reproduce
// the stored result.
var ErrMismatch = errors.New("replay: result mismatch")

// NewGame builds the game a recording was played in. The fixed mode honors
// the recorded piece letter.
func NewGame(mode, piece string) (registry.Game, error) {
	g, err := registry.Create(mode, registry.Options{Piece: piece})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return g, nil
}

// Player steps a recorded session one tick at a time.
type Player struct {
	game  registry.Game
	ticks []core.Tick
	pos   int
}

// NewPlayer decodes rec and resets a fresh game to its recorded setup.
func NewPlayer(rec storage.Recording, screenW, screenH int) (*Player, error) {
	ticks, err := Decode(rec.Ticks)
	if err != nil {
		return nil, err
	}
	g, err := NewGame(rec.Mode, rec.Piece)
	if err != nil {
		return nil, err
	}
	g.Reset(core.RuntimeConfig{
		ScreenW:   screenW,
		ScreenH:   screenH,
		BoardW:    rec.Width,
		BoardH:    rec.Height,
		QueueSize: rec.QueueSize,
		Seed:      rec.Seed,
	})
	return &Player{game: g, ticks: ticks}, nil
}

// Game returns the game being replayed.
func (p *Player) Game() registry.Game {
	return p.game
}

// Next applies the next recorded tick. ok is false once the log is exhausted.
func (p *Player) Next() (res core.StepResult, ok bool) {
	if p.pos >= len(p.ticks) {
		return res, false
	}
	res = p.game.Step(p.ticks[p.pos])
	p.pos++
	return res, true
}

// Done reports whether every tick has been applied.
func (p *Player) Done() bool {
	return p.pos >= len(p.ticks)
}

// Progress returns the number of applied ticks and the total.
func (p *Player) Progress() (pos, total int) {
	return p.pos, len(p.ticks)
}

// Run re-simulates rec headlessly and returns the final state.
func Run(rec storage.Recording) (core.GameState, error) {
	p, err := NewPlayer(rec, 0, 0)
	if err != nil {
		return core.GameState{}, err
	}
	for {
		if _, ok := p.Next(); !ok {
			break
		}
	}
	return p.game.State(), nil
}

// Verify re-simulates rec and checks that it ends with the stored score,
// lines and pieces. A recording stores the result of its last round only,
// but every tick of earlier rounds is replayed to reach it.
func Verify(rec storage.Recording) (core.GameState, error) {
	got, err := Run(rec)
	if err != nil {
		return got, err
	}
	if got.Score != rec.Score || got.Lines != rec.Lines || got.Pieces != rec.Pieces {
		return got, fmt.Errorf("%w: recorded %d/%d/%d, replayed %d/%d/%d (score/lines/pieces)",
			ErrMismatch, rec.Score, rec.Lines, rec.Pieces, got.Score, got.Lines, got.Pieces)
	}
	return got, nil
}
