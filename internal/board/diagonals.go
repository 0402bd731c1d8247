package board

// The two diagonals through each square, as precomputed bitmasks. Index by
// square; DiagBL2TR runs bottom-left to top-right, DiagTL2BR top-left to
// bottom-right. Values are the literal diagonal constants from the
// reference implementation's square-packing scheme (spec.md §4.1).
const (
	diagA1H8 Bitboard = 0x88442211
	diagA3F8 Bitboard = 0x44221100
	diagA5D8 Bitboard = 0x22110000
	diagA7B8 Bitboard = 0x11000000
	diagC1H6 Bitboard = 0x00884422
	diagE1H4 Bitboard = 0x00008844
	diagG1H2 Bitboard = 0x00000088

	diagA7G1 Bitboard = 0x01122448
	diagA5E1 Bitboard = 0x00011224
	diagA3C1 Bitboard = 0x00000112
	diagA1A1 Bitboard = 0x00000001
	diagB8H2 Bitboard = 0x12244880
	diagD8H4 Bitboard = 0x24488000
	diagF8H6 Bitboard = 0x48800000
	diagH8H8 Bitboard = 0x80000000
)

// DiagBL2TR[i] is the bottom-left-to-top-right diagonal through square i.
var DiagBL2TR = [32]Bitboard{
	diagA1H8, diagC1H6, diagE1H4, diagG1H2,
	diagA1H8, diagC1H6, diagE1H4, diagG1H2,
	diagA3F8, diagA1H8, diagC1H6, diagE1H4,
	diagA3F8, diagA1H8, diagC1H6, diagE1H4,
	diagA5D8, diagA3F8, diagA1H8, diagC1H6,
	diagA5D8, diagA3F8, diagA1H8, diagC1H6,
	diagA7B8, diagA5D8, diagA3F8, diagA1H8,
	diagA7B8, diagA5D8, diagA3F8, diagA1H8,
}

// DiagTL2BR[i] is the top-left-to-bottom-right diagonal through square i.
var DiagTL2BR = [32]Bitboard{
	diagA1A1, diagA3C1, diagA5E1, diagA7G1,
	diagA3C1, diagA5E1, diagA7G1, diagB8H2,
	diagA3C1, diagA5E1, diagA7G1, diagB8H2,
	diagA5E1, diagA7G1, diagB8H2, diagD8H4,
	diagA5E1, diagA7G1, diagB8H2, diagD8H4,
	diagA7G1, diagB8H2, diagD8H4, diagF8H6,
	diagA7G1, diagB8H2, diagD8H4, diagF8H6,
	diagB8H2, diagD8H4, diagF8H6, diagH8H8,
}
