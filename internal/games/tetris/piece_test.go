package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestEveryRotationHasFourCells(t *testing.T) {
	for _, k := range Kinds {
		for r := 0; r < 4; r++ {
			m := Shape(k, r)
			assert.NotZero(t, m, "%s rotation %d has an empty mask", k, r)
			assert.Len(t, Piece{Kind: k, Rotation: r}.Cells(), 4, "%s rotation %d", k, r)
		}
	}
}

func TestShapeInvalidKind(t *testing.T) {
	assert.Zero(t, Shape(KindNone, 0))
	assert.Zero(t, Shape(Kind(42), 0))
}

func TestRotateRoundTrip(t *testing.T) {
	for n := -11; n <= 11; n++ {
		for start := 0; start < 4; start++ {
			p := Piece{Kind: KindT, Rotation: start}
			p.Rotate(n)
			assert.GreaterOrEqual(t, p.Rotation, 0)
			assert.Less(t, p.Rotation, 4)
			p.Rotate(-n)
			assert.Equal(t, start, p.Rotation, "rotate(%d) then rotate(%d) from %d", n, -n, start)
		}
	}
}

func TestRotateNegativeWraps(t *testing.T) {
	p := NewPiece(KindJ, 0, 0)
	p.Rotate(-1)
	assert.Equal(t, 3, p.Rotation)

	p.Rotate(-6)
	assert.Equal(t, 1, p.Rotation)
}

func TestNewPiece(t *testing.T) {
	p := NewPiece(KindL, 3, 7)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 7, p.Y)
	assert.Equal(t, core.ColorOrange, p.Color())
}

func TestCellsRowMajor(t *testing.T) {
	p := NewPiece(KindT, 2, 3)
	assert.Equal(t, []core.Point{
		{X: 3, Y: 3},
		{X: 2, Y: 4}, {X: 3, Y: 4}, {X: 4, Y: 4},
	}, p.Cells())
}

func TestIsOccupying(t *testing.T) {
	p := NewPiece(KindO, 5, 5)

	assert.True(t, p.IsOccupying(5, 5))
	assert.True(t, p.IsOccupying(6, 6))
	assert.False(t, p.IsOccupying(7, 5), "inside the box but not part of the mask")
	assert.False(t, p.IsOccupying(4, 5), "outside the box")
	assert.False(t, p.IsOccupying(100, -100), "far outside the box")
}

func TestOverlaps(t *testing.T) {
	a := NewPiece(KindO, 0, 0)

	tests := []struct {
		name  string
		other Piece
		want  bool
	}{
		{"same position", NewPiece(KindO, 0, 0), true},
		{"shares one cell", NewPiece(KindO, 1, 1), true},
		{"adjacent", NewPiece(KindO, 2, 0), false},
		{"boxes overlap but cells do not", NewPiece(KindO, 2, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(a), "overlap should be symmetric")
		})
	}
}

func TestAnyOverlap(t *testing.T) {
	settled := []Piece{NewPiece(KindO, 0, 18), NewPiece(KindO, 2, 18)}

	assert.True(t, AnyOverlap(NewPiece(KindO, 1, 17), settled))
	assert.False(t, AnyOverlap(NewPiece(KindO, 4, 18), settled))
	assert.False(t, AnyOverlap(NewPiece(KindO, 0, 0), nil))
}

func TestBounds(t *testing.T) {
	p := NewPiece(KindI, 3, 0)
	assert.Equal(t, core.NewRect(3, 1, 4, 1), p.Bounds())

	p.Rotate(1)
	assert.Equal(t, core.NewRect(5, 0, 1, 4), p.Bounds())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}

	got, ok := ParseKind("t")
	assert.True(t, ok)
	assert.Equal(t, KindT, got)

	_, ok = ParseKind("X")
	assert.False(t, ok)
	_, ok = ParseKind("")
	assert.False(t, ok)
}

func TestKindColorsDistinct(t *testing.T) {
	seen := make(map[core.Color]Kind)
	for _, k := range Kinds {
		c := k.Color()
		assert.NotEqual(t, core.ColorDefault, c)
		if prev, dup := seen[c]; dup {
			t.Errorf("%s and %s share color %d", prev, k, c)
		}
		seen[c] = k
	}
}
