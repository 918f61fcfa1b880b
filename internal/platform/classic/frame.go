package classic

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Frame remembers what was last drawn to the terminal so that a redraw only
// touches cells that changed. Diff compares the damaged areas reported since
// the previous Diff, or the whole screen after DamageAll or Invalidate.
type Frame struct {
	width, height int
	cells         *intmap.Map[int, uint64]
	full          bool
	damage        []core.Rect
}

// NewFrame creates an empty frame cache.
func NewFrame() *Frame {
	return &Frame{cells: intmap.New[int, uint64](0), full: true}
}

func pack(c core.Cell) uint64 {
	return uint64(c.Rune)<<8 | uint64(c.Color)
}

// Invalidate forgets everything drawn, forcing the next Diff to emit every
// cell.
func (f *Frame) Invalidate() {
	f.cells = intmap.New[int, uint64](f.width * f.height)
	f.DamageAll()
}

// Damage marks r as possibly changed.
func (f *Frame) Damage(r core.Rect) {
	if !f.full {
		f.damage = append(f.damage, r)
	}
}

// DamageAll makes the next Diff compare the whole screen.
func (f *Frame) DamageAll() {
	f.full = true
	f.damage = f.damage[:0]
}

// clip restricts r to the frame. The result is empty when r lies outside.
func (f *Frame) clip(r core.Rect) core.Rect {
	if r.Empty() || !r.Intersects(core.NewRect(0, 0, f.width, f.height)) {
		return core.Rect{}
	}
	x0, y0 := core.Clamp(r.X, 0, f.width), core.Clamp(r.Y, 0, f.height)
	x1, y1 := core.Clamp(r.Right(), 0, f.width), core.Clamp(r.Bottom(), 0, f.height)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Diff compares the damaged part of s with the cache, calls emit for every
// cell that differs and records the new contents. Returns the number of
// emitted cells.
func (f *Frame) Diff(s *core.Screen, emit func(x, y int, c core.Cell)) int {
	if s.Width() != f.width || s.Height() != f.height {
		f.width, f.height = s.Width(), s.Height()
		f.Invalidate()
	}

	areas := f.damage
	if f.full {
		areas = []core.Rect{core.NewRect(0, 0, f.width, f.height)}
	}

	n := 0
	for _, r := range areas {
		n += f.diffRect(s, f.clip(r), emit)
	}
	f.full = false
	f.damage = f.damage[:0]
	return n
}

func (f *Frame) diffRect(s *core.Screen, r core.Rect, emit func(x, y int, c core.Cell)) int {
	n := 0
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c := s.GetCell(x, y)
			key := y*f.width + x
			v := pack(c)
			if old, ok := f.cells.Get(key); ok && old == v {
				continue
			}
			f.cells.Put(key, v)
			emit(x, y, c)
			n++
		}
	}
	return n
}
