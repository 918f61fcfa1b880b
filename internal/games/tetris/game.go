package tetris

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Options configures a game mode.
type Options struct {
	ID    string
	Title string

	// Preview enables the look-ahead queue. Without it each spawn draws
	// its kind directly.
	Preview bool

	// FixedKind, when valid, makes every spawn use that kind.
	FixedKind Kind
}

// Game is the tick controller. It owns the board, the active piece, the
// queue and the counters, and is their only writer: drivers call Step once
// per tick and read state between ticks.
type Game struct {
	opts Options
	cfg  core.RuntimeConfig
	rng  *rand.Rand

	board  *Board
	active Piece
	queue  *Queue

	tick   uint64
	score  int
	lines  int
	pieces int

	gameOver bool
	paused   bool
}

// New creates a game for the given mode options. Call Reset before Step.
func New(opts Options) *Game {
	return &Game{opts: opts}
}

// NewClassic creates the classic mode: random kinds with a three-piece
// look-ahead.
func NewClassic() *Game {
	return New(Options{ID: "classic", Title: "Classic", Preview: true})
}

// NewBlind creates a mode without look-ahead.
func NewBlind() *Game {
	return New(Options{ID: "blind", Title: "Blind (no preview)"})
}

// NewFixed creates a practice mode where every piece has the same kind.
func NewFixed(kind Kind) *Game {
	return New(Options{ID: "fixed", Title: "Fixed " + kind.String() + " pieces", Preview: true, FixedKind: kind})
}

// ErrUnknownPiece is returned for piece letters outside I, O, T, S, Z, J, L.
var ErrUnknownPiece = errors.New("tetris: unknown piece")

func init() {
	registry.Register("classic", func(registry.Options) (registry.Game, error) {
		return NewClassic(), nil
	})
	registry.Register("blind", func(registry.Options) (registry.Game, error) {
		return NewBlind(), nil
	})
	registry.Register("fixed", func(opts registry.Options) (registry.Game, error) {
		if opts.Piece == "" {
			return NewFixed(KindI), nil
		}
		k, ok := ParseKind(opts.Piece)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownPiece, opts.Piece)
		}
		return NewFixed(k), nil
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.opts.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.opts.Title
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.BoardW <= 0 {
		cfg.BoardW = DefaultWidth
	}
	if cfg.BoardH <= 0 {
		cfg.BoardH = DefaultHeight
	}
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.board = NewBoard(cfg.BoardW, cfg.BoardH)

	size := 0
	if g.opts.Preview {
		size = DefaultQueueSize
		if cfg.QueueSize > 0 {
			size = cfg.QueueSize
		}
	}
	if g.opts.FixedKind.Valid() {
		g.queue = NewFixedQueue(g.opts.FixedKind, size)
	} else {
		g.queue = NewQueue(g.rng, size)
	}

	g.tick = 0
	g.score = 0
	g.lines = 0
	g.pieces = 0
	g.paused = false

	var collided bool
	g.active, collided = SpawnNext(g.queue, g.board)
	g.gameOver = collided
}

// Step advances the game by one tick. A gravity tick applies one row of
// gravity and locks the piece if it cannot fall. An input tick applies one
// action; only HardDrop locks within the same tick.
func (g *Game) Step(t core.Tick) core.StepResult {
	g.tick++
	res := core.StepResult{Erase: g.active.Cells()}

	if !t.IsGravity() {
		switch t.Action {
		case core.ActionRestart:
			if g.gameOver {
				g.restart()
				return g.finish(res)
			}
		case core.ActionPause:
			if !g.gameOver {
				g.paused = !g.paused
			}
		}
	}

	if g.gameOver || g.paused {
		return g.finish(res)
	}

	if t.IsGravity() {
		if !TryFall(&g.active, g.board) {
			g.lock(&res)
		}
		return g.finish(res)
	}

	switch t.Action {
	case core.ActionMoveLeft:
		TryMoveLeft(&g.active, g.board)
	case core.ActionMoveRight:
		TryMoveRight(&g.active, g.board)
	case core.ActionRotate:
		TryRotate(&g.active, g.board)
	case core.ActionSoftDrop:
		TryFall(&g.active, g.board)
	case core.ActionHardDrop:
		FallInstantly(&g.active, g.board)
		g.lock(&res)
	}

	return g.finish(res)
}

func (g *Game) finish(res core.StepResult) core.StepResult {
	if !g.gameOver {
		res.Draw = g.active.Cells()
	}
	res.State = g.State()
	return res
}

// lock merges the active piece, clears rows, scores and spawns the next
// piece. A colliding spawn ends the game.
func (g *Game) lock(res *core.StepResult) {
	res.Locked = true
	res.Merged = g.active.Cells()

	g.board.Merge(g.active)
	res.Cleared = g.board.FullRows()
	cleared := g.board.ClearFullRows()

	g.score = CalculateScore(g.score, true, cleared)
	g.lines += cleared
	g.pieces++

	var collided bool
	g.active, collided = SpawnNext(g.queue, g.board)
	if collided {
		g.gameOver = true
	}
}

func (g *Game) restart() {
	cfg := g.cfg
	cfg.Seed = g.rng.Int63()
	g.Reset(cfg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		Pieces:   g.pieces,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Board returns the settled board. Callers must not mutate it.
func (g *Game) Board() *Board {
	return g.board
}

// Active returns a copy of the falling piece.
func (g *Game) Active() Piece {
	return g.active
}

// Ghost returns where the active piece would rest after a hard drop.
func (g *Game) Ghost() Piece {
	ghost := g.active
	FallInstantly(&ghost, g.board)
	return ghost
}

// Upcoming returns the look-ahead kinds, front first.
func (g *Game) Upcoming() []Kind {
	return g.queue.Peek()
}

// Seed returns the seed of the current round.
func (g *Game) Seed() int64 {
	return g.cfg.Seed
}
