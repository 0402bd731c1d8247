package board

import "encoding/binary"

// movesTillDraw is the since-capture half-move count at which a position is
// drawn (spec.md §3: since_capture in [0,30], draw at >= 30).
const movesTillDraw = 30

// Position is the 14-byte logical state of a draughts game: two 32-bit
// bitboards for the stones of each color, one bitboard marking which
// stones are kings, a half-move clock since the last capture or pawn
// move, and a side-to-move flag.
//
// Position is a plain value type — copying it copies the whole position,
// which is exactly what the search tree and random playouts rely on.
type Position struct {
	Black        Bitboard
	White        Bitboard
	Queens       Bitboard
	SinceCapture int8
	BlackTurn    bool
}

// StartingPosition is the initial draughts setup: Black on the bottom three
// ranks (indices 0-11), White on the top three (indices 20-31), White to
// move.
var StartingPosition = Position{
	Black:        0x00000FFF,
	White:        0xFFF00000,
	Queens:       Empty,
	SinceCapture: 0,
	BlackTurn:    false,
}

// Checkers returns the bitboard of the side to move's own stones.
func (p Position) Checkers() Bitboard {
	if p.BlackTurn {
		return p.Black
	}
	return p.White
}

// Opponent returns the bitboard of the side not to move's stones.
func (p Position) Opponent() Bitboard {
	if p.BlackTurn {
		return p.White
	}
	return p.Black
}

// Occupied returns every stone on the board, either color.
func (p Position) Occupied() Bitboard { return p.Black | p.White }

// Free returns every empty dark square.
func (p Position) Free() Bitboard { return ^p.Occupied() & Full }

// Move applies a non-capturing move of the stone at fromIdx to toIdx. It
// does not check legality — callers (movegen, search expansion, random
// playout) are expected to only ever pass moves drawn from GetMoves.
func (p *Position) Move(fromIdx, toIdx int) {
	move := FromIndex(fromIdx) | FromIndex(toIdx)

	if p.Queens.HasBit(fromIdx) {
		p.Queens ^= move
	} else {
		p.SinceCapture = -1
	}

	if p.BlackTurn {
		p.Black ^= move
	} else {
		p.White ^= move
	}
}

// Capture applies a single capturing hop of the stone at fromIdx landing
// on toIdx, removing every opponent stone on the open diagonal segment
// strictly between the two squares.
func (p *Position) Capture(fromIdx, toIdx int) {
	p.SinceCapture = -1
	p.Move(fromIdx, toIdx)

	diag := diagonalThrough(fromIdx, toIdx)

	lo, hi := fromIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	captured := rangeMask(lo+1, hi) & diag

	if p.BlackTurn {
		p.White &^= captured
	} else {
		p.Black &^= captured
	}
	p.Queens &^= captured
}

// diagonalThrough returns whichever of the two diagonals through fromIdx
// also passes through toIdx.
func diagonalThrough(fromIdx, toIdx int) Bitboard {
	if DiagBL2TR[fromIdx] == DiagBL2TR[toIdx] {
		return DiagBL2TR[fromIdx]
	}
	return DiagTL2BR[fromIdx]
}

// rangeMask returns the bitboard of squares in [lo, hi), i.e. indices
// lo, lo+1, ..., hi-1.
func rangeMask(lo, hi int) Bitboard {
	if lo >= hi {
		return Empty
	}
	return (Full << uint(lo)) & (Full >> uint(32-hi))
}

// EndTurn promotes any stone sitting on its promotion row, flips the side
// to move, and advances the half-move clock.
func (p *Position) EndTurn() {
	p.Queens |= p.Black & BlackPromotion
	p.Queens |= p.White & WhitePromotion
	p.BlackTurn = !p.BlackTurn
	p.SinceCapture++
}

// HasLost reports whether the side to move has no legal move at all
// (stalemate counts as a loss in draughts).
func (p Position) HasLost() bool {
	return (p.GetAllMoving() | p.GetAllCapturing()).IsEmpty()
}

// IsDraw reports whether the 30 half-move no-capture/no-pawn-move limit
// has been reached.
func (p Position) IsDraw() bool {
	return p.SinceCapture >= movesTillDraw
}

// MarshalBinary implements the spec.md §6 wire layout: two little-endian
// uint32 words (black, white), one uint32 (queens), one signed int8
// (since_capture), one bool byte (black_turn).
func (p Position) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 13)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Black))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.White))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.Queens))
	buf[12] = byte(p.SinceCapture)
	if p.BlackTurn {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf, nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (p *Position) UnmarshalBinary(data []byte) error {
	if len(data) < 14 {
		panic("board: truncated position encoding")
	}
	p.Black = Bitboard(binary.LittleEndian.Uint32(data[0:4]))
	p.White = Bitboard(binary.LittleEndian.Uint32(data[4:8]))
	p.Queens = Bitboard(binary.LittleEndian.Uint32(data[8:12]))
	p.SinceCapture = int8(data[12])
	p.BlackTurn = data[13] != 0
	return nil
}
