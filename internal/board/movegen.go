package board

// GetMoving returns the subset of from that holds a stone able to make a
// non-capturing move this turn.
func (p Position) GetMoving(from Bitboard) Bitboard {
	free := p.Free()

	var moving Bitboard
	if p.BlackTurn {
		r3 := (free & CanShiftRight3) >> 3
		r4 := (free & CanShiftRight4) >> 4
		r5 := (free & CanShiftRight5) >> 5
		moving = (r3 | r4 | r5) & from
	} else {
		l3 := (free & CanShiftLeft3) << 3
		l4 := (free & CanShiftLeft4) << 4
		l5 := (free & CanShiftLeft5) << 5
		moving = (l3 | l4 | l5) & from
	}

	for _, idx := range BitsOf(from & p.Queens) {
		if !p.queenMoves(idx).IsEmpty() {
			moving |= FromIndex(idx)
		}
	}
	return moving
}

// GetMoves returns the destination squares reachable by a non-capturing
// move of the stone(s) in from.
func (p Position) GetMoves(from Bitboard) Bitboard {
	free := p.Free()

	var moves Bitboard
	if p.BlackTurn {
		l3 := (from & CanShiftLeft3) << 3
		l4 := (from & CanShiftLeft4) << 4
		l5 := (from & CanShiftLeft5) << 5
		moves = (l3 | l4 | l5) & free
	} else {
		r3 := (from & CanShiftRight3) >> 3
		r4 := (from & CanShiftRight4) >> 4
		r5 := (from & CanShiftRight5) >> 5
		moves = (r3 | r4 | r5) & free
	}

	for _, idx := range BitsOf(from & p.Queens) {
		moves |= p.queenMoves(idx)
	}
	return moves
}

// GetCapturing returns the subset of from that holds a stone able to make
// a capture this turn.
func (p Position) GetCapturing(from Bitboard) Bitboard {
	free := p.Free()
	opponent := p.Opponent()

	r3 := (free & CanShiftRight3) >> 3
	r4 := (free & CanShiftRight4) >> 4
	r5 := (free & CanShiftRight5) >> 5
	l3 := (free & CanShiftLeft3) << 3
	l4 := (free & CanShiftLeft4) << 4
	l5 := (free & CanShiftLeft5) << 5

	r34 := (r3 & opponent & CanShiftRight4) >> 4
	r43 := (r4 & opponent & CanShiftRight3) >> 3
	r45 := (r4 & opponent & CanShiftRight5) >> 5
	r54 := (r5 & opponent & CanShiftRight4) >> 4
	l34 := (l3 & opponent & CanShiftLeft4) << 4
	l43 := (l4 & opponent & CanShiftLeft3) << 3
	l45 := (l4 & opponent & CanShiftLeft5) << 5
	l54 := (l5 & opponent & CanShiftLeft4) << 4

	capturing := (r34 | r43 | r45 | r54 | l34 | l43 | l45 | l54) & from

	for _, idx := range BitsOf(from & p.Queens) {
		if !p.queenCaptures(idx).IsEmpty() {
			capturing |= FromIndex(idx)
		}
	}
	return capturing
}

// GetCaptures returns the landing squares reachable by a single capturing
// hop of the stone(s) in from.
func (p Position) GetCaptures(from Bitboard) Bitboard {
	opponent := p.Opponent()

	l3 := (from & CanShiftLeft3) << 3
	l4 := (from & CanShiftLeft4) << 4
	l5 := (from & CanShiftLeft5) << 5
	r3 := (from & CanShiftRight3) >> 3
	r4 := (from & CanShiftRight4) >> 4
	r5 := (from & CanShiftRight5) >> 5

	l34 := (l3 & opponent & CanShiftLeft4) << 4
	l43 := (l4 & opponent & CanShiftLeft3) << 3
	l45 := (l4 & opponent & CanShiftLeft5) << 5
	l54 := (l5 & opponent & CanShiftLeft4) << 4
	r34 := (r3 & opponent & CanShiftRight4) >> 4
	r43 := (r4 & opponent & CanShiftRight3) >> 3
	r45 := (r4 & opponent & CanShiftRight5) >> 5
	r54 := (r5 & opponent & CanShiftRight4) >> 4

	captures := (l34 | l43 | l45 | l54 | r34 | r43 | r45 | r54) & p.Free()

	queens := from & p.Queens
	if queens.IsEmpty() {
		return captures
	}
	for _, idx := range BitsOf(queens) {
		captures |= p.queenCaptures(idx)
	}
	return captures
}

// GetAllMoving returns the side-to-move's stones that can make a
// non-capturing move.
func (p Position) GetAllMoving() Bitboard { return p.GetMoving(p.Checkers()) }

// GetAllCapturing returns the side-to-move's stones that can capture.
func (p Position) GetAllCapturing() Bitboard { return p.GetCapturing(p.Checkers()) }

// queenMoves returns the squares a king at index may slide to.
func (p Position) queenMoves(index int) Bitboard {
	occ := p.Occupied()
	return queenSlideDiag(occ, DiagTL2BR[index], index) | queenSlideDiag(occ, DiagBL2TR[index], index)
}

// queenCaptures returns the landing squares a king at index may capture
// to, across both of its diagonals.
func (p Position) queenCaptures(index int) Bitboard {
	occ := p.Occupied()
	opp := p.Opponent()
	return queenCaptureDiag(occ, opp, DiagTL2BR[index], index) | queenCaptureDiag(occ, opp, DiagBL2TR[index], index)
}

// queenSlideDiag returns the free squares between index and the nearest
// occupied square on either side along diag, excluding index itself.
func queenSlideDiag(occupied, diag Bitboard, index int) Bitboard {
	below, above := -1, 32
	for _, b := range BitsOf(diag & occupied) {
		switch {
		case b < index:
			below = b
		case b > index && above == 32:
			above = b
		}
	}
	return (rangeMask(below+1, above) &^ FromIndex(index)) & diag
}

// queenCaptureDiag returns the landing squares a king at index may capture
// to along a single diagonal.
func queenCaptureDiag(occupied, opponent, diag Bitboard, index int) Bitboard {
	taken := BitsOf(diag & occupied)

	belowPrev, below := -1, -1
	above, abovePrev := -1, -1
	for _, b := range taken {
		switch {
		case b < index:
			belowPrev, below = below, b
		case b > index:
			if above == -1 {
				above = b
			} else if abovePrev == -1 {
				abovePrev = b
			}
		}
	}

	l2, l1 := index, -1
	if below != -1 {
		l2, l1 = below, belowPrev
	}
	r1, r2 := index, 32
	if above != -1 {
		r1 = above
		if abovePrev != -1 {
			r2 = abovePrev
		}
	}

	var left, right Bitboard
	if l1+1 != l2 {
		left = rangeMask(l1+1, l2)
	}
	if r1+1 != r2 {
		right = rangeMask(r1+1, r2)
	}
	if !opponent.HasBit(l2) {
		left = Empty
	}
	if !opponent.HasBit(r1) {
		right = Empty
	}
	return (left | right) & diag
}

// Successors enumerates every distinct legal position reachable in one
// turn from p, honoring mandatory capture: if any capture is available,
// only (compound) capturing sequences are legal moves. Each compound
// capture is expanded depth-first and committed only at a square with no
// further capture available (spec.md §4.2).
func (p Position) Successors() []Position {
	if capturing := p.GetAllCapturing(); !capturing.IsEmpty() {
		var out []Position
		for _, from := range BitsOf(capturing) {
			out = appendCaptureSuccessors(out, p, from)
		}
		return out
	}

	var out []Position
	for _, from := range BitsOf(p.GetAllMoving()) {
		for _, to := range BitsOf(p.GetMoves(FromIndex(from))) {
			next := p
			next.Move(from, to)
			next.EndTurn()
			out = append(out, next)
		}
	}
	return out
}

func appendCaptureSuccessors(out []Position, pos Position, from int) []Position {
	captures := pos.GetCaptures(FromIndex(from))
	if captures.IsEmpty() {
		next := pos
		next.EndTurn()
		return append(out, next)
	}

	for _, to := range BitsOf(captures) {
		next := pos
		next.Capture(from, to)
		out = appendCaptureSuccessors(out, next, to)
	}
	return out
}
