package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultQueueSize is the look-ahead length of the classic mode.
const DefaultQueueSize = 3

// RandomSource draws uniformly distributed integers in [0, n).
// *math/rand.Rand satisfies it; tests inject seeded generators.
type RandomSource interface {
	Intn(n int) int
}

// RandomKind draws one of the seven variants uniformly.
func RandomKind(rng RandomSource) Kind {
	return Kinds[rng.Intn(NumKinds)]
}

// Queue supplies the kind of each spawned piece. With a look-ahead size
// above zero it keeps exactly that many upcoming kinds: each Pop consumes
// the front and appends a fresh draw. A fixed queue always yields the same
// kind.
type Queue struct {
	rng      RandomSource
	fixed    Kind
	upcoming []Kind
}

// NewQueue creates a random queue with size look-ahead kinds.
func NewQueue(rng RandomSource, size int) *Queue {
	q := &Queue{rng: rng}
	q.fill(size)
	return q
}

// NewFixedQueue creates a queue that always yields kind, showing size
// copies of it as look-ahead.
func NewFixedQueue(kind Kind, size int) *Queue {
	q := &Queue{fixed: kind}
	q.fill(size)
	return q
}

func (q *Queue) fill(size int) {
	q.upcoming = make([]Kind, 0, max(size, 0))
	for i := 0; i < size; i++ {
		q.upcoming = append(q.upcoming, q.draw())
	}
}

func (q *Queue) draw() Kind {
	if q.fixed.Valid() {
		return q.fixed
	}
	return RandomKind(q.rng)
}

// Pop returns the next kind to spawn and refills the look-ahead.
func (q *Queue) Pop() Kind {
	if len(q.upcoming) == 0 {
		return q.draw()
	}
	next := q.upcoming[0]
	copy(q.upcoming, q.upcoming[1:])
	q.upcoming[len(q.upcoming)-1] = q.draw()
	return next
}

// Peek returns a copy of the upcoming kinds, front first.
func (q *Queue) Peek() []Kind {
	out := make([]Kind, len(q.upcoming))
	copy(out, q.upcoming)
	return out
}

// Len returns the look-ahead length. It never changes after construction.
func (q *Queue) Len() int {
	return len(q.upcoming)
}

// SpawnPoint returns the origin at which new pieces appear: the 4x4 box
// centered horizontally on the top row.
func SpawnPoint(b *Board) core.Point {
	return core.Pt((b.Width()-4)/2, 0)
}

// SpawnNext creates the next active piece at the spawn point. collided is
// true when the fresh piece already overlaps the walls or settled cells,
// which ends the game.
func SpawnNext(q *Queue, b *Board) (p Piece, collided bool) {
	at := SpawnPoint(b)
	p = NewPiece(q.Pop(), at.X, at.Y)
	return p, b.Collides(p)
}
