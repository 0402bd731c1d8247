package board

import (
	"fmt"
	"strconv"
	"strings"
)

// SquareNotation renders a square index in PDN-like file/rank notation
// (spec.md §6): files a..h, ranks 1..8, with
// col = 'a' + (7 - i), row = '1' + (7 - j), where (i, j) is the square's
// (file, rank) coordinate pair under the §4.1 packing scheme.
func SquareNotation(idx int) string {
	i, j := IndexToCoords(idx)
	col := byte('a' + (7 - i))
	row := byte('1' + (7 - j))
	return string([]byte{col, row})
}

// ParseSquareNotation is the inverse of SquareNotation.
func ParseSquareNotation(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("board: malformed square %q", s)
	}
	col, row := s[0], s[1]
	if col < 'a' || col > 'h' || row < '1' || row > '8' {
		return 0, fmt.Errorf("board: malformed square %q", s)
	}
	i := 7 - int(col-'a')
	j := 7 - int(row-'1')
	if (i+j)%2 != 0 {
		return 0, fmt.Errorf("board: %q is not a dark square", s)
	}
	return CoordsToIndex(i, j), nil
}

// Move is a single turn's notation: a plain move (From, To) or a compound
// capture (From, then each landing square in Path, in order).
type Move struct {
	From    int
	Path    []int // plain move: single destination; capture: one or more hops
	Capture bool
}

// String renders the move per spec.md §6: plain moves as "from-to",
// captures as "from:x1:x2:...:xn".
func (m Move) String() string {
	if len(m.Path) == 0 {
		panic("board: move notation with no destination")
	}
	from := SquareNotation(m.From)
	if !m.Capture {
		return from + "-" + SquareNotation(m.Path[0])
	}
	parts := make([]string, 0, len(m.Path)+1)
	parts = append(parts, from)
	for _, sq := range m.Path {
		parts = append(parts, SquareNotation(sq))
	}
	return strings.Join(parts, ":")
}

// ParseMove parses the "from-to" or "from:x1:...:xn" notation.
func ParseMove(s string) (Move, error) {
	if strings.Contains(s, ":") {
		fields := strings.Split(s, ":")
		path := make([]int, 0, len(fields)-1)
		from, err := ParseSquareNotation(fields[0])
		if err != nil {
			return Move{}, err
		}
		for _, f := range fields[1:] {
			sq, err := ParseSquareNotation(f)
			if err != nil {
				return Move{}, err
			}
			path = append(path, sq)
		}
		if len(path) == 0 {
			return Move{}, fmt.Errorf("board: capture %q has no landing squares", s)
		}
		return Move{From: from, Path: path, Capture: true}, nil
	}

	fields := strings.Split(s, "-")
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("board: malformed move %q", s)
	}
	from, err := ParseSquareNotation(fields[0])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquareNotation(fields[1])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, Path: []int{to}}, nil
}

// MoveBetween reconstructs the notation for the single transition from
// before to after: a one-hop capture if some stone other than the one on
// from is gone in after, a plain move otherwise. It cannot express multi-hop compound captures on its
// own — callers logging a full compound capture should accumulate the
// intermediate landing squares as they apply each hop and build a Move
// directly instead.
func MoveBetween(before, after Position, from, to int) Move {
	if before.Occupied()&^after.Occupied()&^FromIndex(from) != Empty {
		return Move{From: from, Path: []int{to}, Capture: true}
	}
	return Move{From: from, Path: []int{to}}
}

// DiffMove reconstructs the Move notation for a full turn by comparing the
// position before it was played to the position after: the stone that
// moved is the one whose color lost a bit between the two (its start
// square) and gained a bit (its landing square), which holds for both a
// plain move and a multi-hop compound capture since every intermediate
// landing square of a capture is vacated again before the turn ends.
// Intermediate hops of a compound capture are not recoverable from the
// two endpoint positions alone and are not reported.
func DiffMove(before, after Position) Move {
	mover := before.Black
	if !before.BlackTurn {
		mover = before.White
	}
	moverAfter := after.Black
	if !before.BlackTurn {
		moverAfter = after.White
	}

	fromBits := BitsOf(mover &^ moverAfter)
	toBits := BitsOf(moverAfter &^ mover)
	if len(fromBits) != 1 || len(toBits) != 1 {
		panic("board: DiffMove given positions that are not one turn apart")
	}

	capture := before.Occupied().PopCount() != after.Occupied().PopCount()
	return Move{From: fromBits[0], Path: []int{toBits[0]}, Capture: capture}
}

// FormatSinceCapture renders the half-move clock for diagnostic logging.
func FormatSinceCapture(p Position) string {
	return strconv.Itoa(int(p.SinceCapture))
}
