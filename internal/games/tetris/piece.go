// Package tetris implements the falling-block simulation: tetromino
// geometry, the settled-cell board, collision predicates, motion and
// placement, spawning, scoring and the tick controller that ties them
// together. Everything here is deterministic given a seed and a tick log.
package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetromino variants.
// The zero value KindNone marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// NumKinds is the number of playable tetromino variants.
const NumKinds = 7

// Kinds lists the playable variants in canonical order.
var Kinds = [NumKinds]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// Valid reports whether k is one of the seven playable variants.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "-"
	}
}

// ParseKind converts a single-letter name ("I", "t", ...) to a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// Color returns the canonical color for the variant.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	case KindO:
		return core.ColorYellow
	case KindS:
		return core.ColorGreen
	case KindT:
		return core.ColorMagenta
	case KindZ:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// Mask is a 4x4 occupancy grid packed into 16 bits, bit row*4+col.
type Mask uint16

// Has reports whether the mask cell at (col, row) is set.
// Coordinates outside the 4x4 box are never set.
func (m Mask) Has(col, row int) bool {
	if col < 0 || col >= 4 || row < 0 || row >= 4 {
		return false
	}
	return m&(1<<(row*4+col)) != 0
}

// Extent returns the tight bounding box of the set cells, relative to the
// mask origin.
func (m Mask) Extent() core.Rect {
	if m == 0 {
		return core.Rect{}
	}
	minC, minR, maxC, maxR := 3, 3, 0, 0
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !m.Has(col, row) {
				continue
			}
			minC = min(minC, col)
			minR = min(minR, row)
			maxC = max(maxC, col)
			maxR = max(maxR, row)
		}
	}
	return core.NewRect(minC, minR, maxC-minC+1, maxR-minR+1)
}

func parseMask(rows [4]string) Mask {
	var m Mask
	for row, line := range rows {
		for col := 0; col < 4 && col < len(line); col++ {
			if line[col] == '#' {
				m |= 1 << (row*4 + col)
			}
		}
	}
	return m
}

// Rotation states, clockwise, rotation 0 first. No wall kicks: a rotation
// either fits in place or is rejected.
var shapeRows = [NumKinds + 1][4][4]string{
	KindI: {
		{"....", "####", "....", "...."},
		{"..#.", "..#.", "..#.", "..#."},
		{"....", "....", "####", "...."},
		{".#..", ".#..", ".#..", ".#.."},
	},
	KindJ: {
		{"#...", "###.", "....", "...."},
		{".##.", ".#..", ".#..", "...."},
		{"....", "###.", "..#.", "...."},
		{".#..", ".#..", "##..", "...."},
	},
	KindL: {
		{"..#.", "###.", "....", "...."},
		{".#..", ".#..", ".##.", "...."},
		{"....", "###.", "#...", "...."},
		{"##..", ".#..", ".#..", "...."},
	},
	KindO: {
		{"##..", "##..", "....", "...."},
		{"##..", "##..", "....", "...."},
		{"##..", "##..", "....", "...."},
		{"##..", "##..", "....", "...."},
	},
	KindS: {
		{".##.", "##..", "....", "...."},
		{".#..", ".##.", "..#.", "...."},
		{"....", ".##.", "##..", "...."},
		{"#...", "##..", ".#..", "...."},
	},
	KindT: {
		{".#..", "###.", "....", "...."},
		{".#..", ".##.", ".#..", "...."},
		{"....", "###.", ".#..", "...."},
		{".#..", "##..", ".#..", "...."},
	},
	KindZ: {
		{"##..", ".##.", "....", "...."},
		{"..#.", ".##.", ".#..", "...."},
		{"....", "##..", ".##.", "...."},
		{".#..", "##..", "#...", "...."},
	},
}

var shapes = buildShapes()

func buildShapes() [NumKinds + 1][4]Mask {
	var out [NumKinds + 1][4]Mask
	for _, k := range Kinds {
		for r := 0; r < 4; r++ {
			out[k][r] = parseMask(shapeRows[k][r])
		}
	}
	return out
}

// Shape returns the mask for kind k at rotation r (normalized into [0,4)).
func Shape(k Kind, r int) Mask {
	if !k.Valid() {
		return 0
	}
	return shapes[k][normRotation(r)]
}

func normRotation(r int) int {
	return ((r % 4) + 4) % 4
}

// Piece is a tetromino placed on the board. X and Y locate the origin of
// its 4x4 mask in board cells.
type Piece struct {
	Kind     Kind
	X, Y     int
	Rotation int
}

// NewPiece creates a piece of the given kind at rotation 0.
func NewPiece(kind Kind, x, y int) Piece {
	return Piece{Kind: kind, X: x, Y: y}
}

// Rotate advances the rotation index by steps, modulo 4. Negative steps
// rotate counter-clockwise. Collision is the caller's concern.
func (p *Piece) Rotate(steps int) {
	p.Rotation = normRotation(p.Rotation + steps)
}

// Mask returns the occupancy mask of the current rotation.
func (p Piece) Mask() Mask {
	return Shape(p.Kind, p.Rotation)
}

// Color returns the canonical color of the piece's kind.
func (p Piece) Color() core.Color {
	return p.Kind.Color()
}

// Cells returns the absolute board coordinates of the occupied cells in
// row-major order of the 4x4 mask.
func (p Piece) Cells() []core.Point {
	m := p.Mask()
	origin := core.Pt(p.X, p.Y)
	cells := make([]core.Point, 0, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if m.Has(col, row) {
				cells = append(cells, origin.Add(col, row))
			}
		}
	}
	return cells
}

// IsOccupying reports whether (x, y) is one of the piece's occupied cells.
// Points outside the 4x4 box are never occupied.
func (p Piece) IsOccupying(x, y int) bool {
	if !core.NewRect(p.X, p.Y, 4, 4).Contains(x, y) {
		return false
	}
	return p.Mask().Has(x-p.X, y-p.Y)
}

// Overlaps reports whether any occupied cell of p coincides with one of
// other's, compared in board coordinates.
func (p Piece) Overlaps(other Piece) bool {
	for _, c := range p.Cells() {
		if other.IsOccupying(c.X, c.Y) {
			return true
		}
	}
	return false
}

// Bounds returns the tight bounding box of the occupied cells in board
// coordinates.
func (p Piece) Bounds() core.Rect {
	e := p.Mask().Extent()
	e.X += p.X
	e.Y += p.Y
	return e
}
