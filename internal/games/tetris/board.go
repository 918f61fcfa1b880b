package tetris

import (
	"hash/fnv"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Default board dimensions in cells.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the fixed-size grid of settled cells.
// Cells are stored in row-major order: index = y*width + x. A cell holds
// the Kind of the piece that settled there, or KindNone when empty.
type Board struct {
	width  int
	height int
	cells  []Kind
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Kind, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Bounds returns the playable area anchored at the origin.
func (b *Board) Bounds() core.Rect {
	return core.NewRect(0, 0, b.width, b.height)
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

// InBounds returns true if the cell is inside the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the kind settled at (x, y), or KindNone for empty or
// out-of-bounds cells.
func (b *Board) At(x, y int) Kind {
	if !b.InBounds(x, y) {
		return KindNone
	}
	return b.cells[b.index(x, y)]
}

// Occupied reports whether a settled block sits at (x, y).
func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y) != KindNone
}

// Set writes a cell directly. Used to build fixtures and practice layouts;
// gameplay only mutates the board through Merge and ClearFullRows.
func (b *Board) Set(x, y int, k Kind) {
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)] = k
	}
}

// Merge writes every occupied cell of p into the board with p's kind.
// Cells outside the board are dropped.
func (b *Board) Merge(p Piece) {
	for _, c := range p.Cells() {
		b.Set(c.X, c.Y, p.Kind)
	}
}

// RowFull reports whether every column of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	row := b.cells[b.index(0, y) : b.index(0, y)+b.width]
	for _, k := range row {
		if k == KindNone {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < b.height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearFullRows removes every full row and lets the rows above fall into
// the gap. Retained rows keep their relative order; rows below the lowest
// cleared row are untouched. Returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	full := b.FullRows()
	if len(full) == 0 {
		return 0
	}

	// Walk upward from the floor copying every retained row into the next
	// free slot.
	dst := b.height - 1
	next := len(full) - 1
	for y := b.height - 1; y >= 0; y-- {
		if next >= 0 && full[next] == y {
			next--
			continue
		}
		if y != dst {
			copy(b.cells[b.index(0, dst):b.index(0, dst)+b.width], b.cells[b.index(0, y):b.index(0, y)+b.width])
		}
		dst--
	}

	// Rows 0..dst were vacated.
	for i := range b.cells[:b.index(0, dst+1)] {
		b.cells[i] = KindNone
	}
	return len(full)
}

// CollidesWithWall reports whether any occupied cell of p lies left of
// column 0, above row 0, at or past column width, or at or past row height.
func (b *Board) CollidesWithWall(p Piece) bool {
	return !p.Bounds().Within(b.Bounds())
}

// CollidesWithSettled reports whether any occupied cell of p coincides
// with a settled cell.
func (b *Board) CollidesWithSettled(p Piece) bool {
	for _, c := range p.Cells() {
		if b.Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// Collides reports whether p overlaps the walls or settled cells.
func (b *Board) Collides(p Piece) bool {
	return b.CollidesWithWall(p) || b.CollidesWithSettled(p)
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for _, k := range b.cells {
		if k != KindNone {
			n++
		}
	}
	return n
}

// Hash returns an FNV-1a digest of the cell contents, for snapshots.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, len(b.cells))
	for i, k := range b.cells {
		buf[i] = byte(k)
	}
	//nolint:errcheck // hash.Hash writes never fail
	h.Write(buf)
	return h.Sum64()
}

// String renders the board as rows of kind letters, '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			k := b.At(x, y)
			if k == KindNone {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(k.String())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from rows of kind letters ('.' or ' ' for
// empty, any other non-kind letter counts as a generic block). Used by
// tests and practice layouts.
func ParseBoard(width int, rows ...string) *Board {
	b := NewBoard(width, len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '.' || ch == ' ' {
				continue
			}
			k, ok := ParseKind(string(ch))
			if !ok {
				k = KindO
			}
			b.Set(x, y, k)
		}
	}
	return b
}

// AnyOverlap reports whether p overlaps any piece in settled. It serves
// layouts kept as a list of locked pieces rather than a grid.
func AnyOverlap(p Piece, settled []Piece) bool {
	for _, other := range settled {
		if p.Overlaps(other) {
			return true
		}
	}
	return false
}
