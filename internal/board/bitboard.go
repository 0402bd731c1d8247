// Package board implements the 32-square bit-packed representation of an
// international (Russian-style) draughts position and its move generator.
package board

import "math/bits"

// Bitboard packs one bit per dark square of an 8x8 draughts board. Index 0
// is the bottom-left dark square, index 31 the top-right one (SquareNotation
// mirrors both axes and names them h8 and a1):
//
//	rank 8: 28 29 30 31
//	rank 7: 24 25 26 27
//	rank 6: 20 21 22 23
//	rank 5: 16 17 18 19
//	rank 4: 12 13 14 15
//	rank 3: 08 09 10 11
//	rank 2: 04 05 06 07
//	rank 1: 00 01 02 03
type Bitboard uint32

// Special masks.
const (
	Empty    Bitboard = 0
	Full     Bitboard = 0xFFFFFFFF
	FreeMask Bitboard = 0xFFFFFFFF
)

// Shift masks: which bits may move one square in a given diagonal direction
// without wrapping around a board edge. Black moves "up" the index space
// (left-shifts), White moves "down" (right-shifts).
const (
	CanShiftLeft3  Bitboard = 0x0E0E0E0E
	CanShiftLeft4  Bitboard = 0x0FFFFFFF
	CanShiftLeft5  Bitboard = 0x00707070
	CanShiftRight3 Bitboard = 0x70707070
	CanShiftRight4 Bitboard = 0xFFFFFFF0
	CanShiftRight5 Bitboard = 0x0E0E0E00
)

// Promotion rows: Black promotes on the top row, White on the bottom row.
const (
	BlackPromotion Bitboard = 0xF0000000
	WhitePromotion Bitboard = 0x0000000F
)

// IsEmpty reports whether no bit is set.
func (b Bitboard) IsEmpty() bool { return b == Empty }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount32(uint32(b)) }

// HasBit reports whether the square at idx is set.
func (b Bitboard) HasBit(idx int) bool { return b&FromIndex(idx) != 0 }

// BitsOf enumerates the set bit indices of b in ascending order.
func BitsOf(b Bitboard) []int {
	out := make([]int, 0, b.PopCount())
	for b != 0 {
		out = append(out, bits.TrailingZeros32(uint32(b)))
		b &= b - 1
	}
	return out
}

// appendBitsOf is BitsOf without an allocation, for hot paths that already
// own scratch storage (search expansion, random playout).
func appendBitsOf(dst []int, b Bitboard) []int {
	for b != 0 {
		dst = append(dst, bits.TrailingZeros32(uint32(b)))
		b &= b - 1
	}
	return dst
}
