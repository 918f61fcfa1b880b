package tetris

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	Lines     int
	Pieces    int
	Kind      Kind
	X, Y      int
	Rotation  int
	Upcoming  []Kind
	BoardHash uint64
	Filled    int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		Lines:     g.lines,
		Pieces:    g.pieces,
		Kind:      g.active.Kind,
		X:         g.active.X,
		Y:         g.active.Y,
		Rotation:  g.active.Rotation,
		Upcoming:  g.queue.Peek(),
		BoardHash: g.board.Hash(),
		Filled:    g.board.Filled(),
		State:     state,
	}
}
