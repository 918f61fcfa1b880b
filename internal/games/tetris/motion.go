package tetris

// TryTranslate moves p by (dx, dy) if the new position collides with
// neither the walls nor settled cells. On collision p is left unchanged
// and false is returned.
func TryTranslate(p *Piece, b *Board, dx, dy int) bool {
	p.X += dx
	p.Y += dy
	if b.Collides(*p) {
		p.X -= dx
		p.Y -= dy
		return false
	}
	return true
}

// TryFall moves p down one row (gravity or soft drop).
func TryFall(p *Piece, b *Board) bool {
	return TryTranslate(p, b, 0, 1)
}

// TryMoveLeft moves p one column left.
func TryMoveLeft(p *Piece, b *Board) bool {
	return TryTranslate(p, b, -1, 0)
}

// TryMoveRight moves p one column right.
func TryMoveRight(p *Piece, b *Board) bool {
	return TryTranslate(p, b, 1, 0)
}

// TryRotate rotates p clockwise in place. If the new orientation collides,
// the rotation is undone and false is returned. No kick offsets are tried.
func TryRotate(p *Piece, b *Board) bool {
	p.Rotate(1)
	if b.Collides(*p) {
		p.Rotate(-1)
		return false
	}
	return true
}

// FallInstantly drops p to its rest position: the lowest row it can reach
// without colliding, from which one more TryFall would fail. Returns the
// number of rows dropped. Terminates within the board height.
func FallInstantly(p *Piece, b *Board) int {
	rows := 0
	for rows <= b.Height() && TryFall(p, b) {
		rows++
	}
	return rows
}
