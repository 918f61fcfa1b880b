package tetris

// Scoring constants.
const (
	LockPoints = 25  // awarded for every locked piece
	RowPoints  = 100 // awarded per cleared row
)

// CalculateScore returns the score after a tick: current plus LockPoints
// if a piece locked, plus RowPoints per cleared row.
func CalculateScore(current int, didLock bool, rowsCleared int) int {
	score := current
	if didLock {
		score += LockPoints
	}
	return score + rowsCleared*RowPoints
}
