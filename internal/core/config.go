package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	BoardW    int   // Board width in cells (0 = game default)
	BoardH    int   // Board height in cells (0 = game default)
	QueueSize int   // Look-ahead pieces (0 = mode default)
	Seed      int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Rows cleared so far
	Pieces   int  // Pieces locked so far
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// It gives renderers enough to erase the previous piece position and to
// redraw only the board rows that changed.
type StepResult struct {
	State GameState

	// Locked is true when a piece was merged into the board this tick.
	Locked bool

	// Merged holds the cells written into the board by the lock.
	Merged []Point

	// Cleared lists the full rows removed this tick, as indices before
	// compaction, top to bottom.
	Cleared []int

	// Erase holds the active piece cells before the tick.
	Erase []Point

	// Draw holds the active piece cells after the tick.
	Draw []Point
}

// DirtyRows returns the inclusive range of board rows whose settled content
// may have changed this tick. ok is false when the board is untouched.
func (r StepResult) DirtyRows() (top, bottom int, ok bool) {
	if !r.Locked {
		return 0, 0, false
	}
	top, bottom = -1, -1
	for _, p := range r.Merged {
		if top < 0 || p.Y < top {
			top = p.Y
		}
		if p.Y > bottom {
			bottom = p.Y
		}
	}
	if len(r.Cleared) > 0 {
		// Compaction shifts every row above the lowest cleared row.
		top = 0
		if last := r.Cleared[len(r.Cleared)-1]; last > bottom {
			bottom = last
		}
	}
	return top, bottom, top >= 0
}
