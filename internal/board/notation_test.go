package board

import (
	"reflect"
	"testing"
)

func TestMoveStringPlain(t *testing.T) {
	m := Move{From: 8, Path: []int{12}}
	if got, want := m.String(), SquareNotation(8)+"-"+SquareNotation(12); got != want {
		t.Fatalf("Move.String() = %q, want %q", got, want)
	}
}

func TestMoveStringCapture(t *testing.T) {
	m := Move{From: 0, Path: []int{9, 18}, Capture: true}
	want := SquareNotation(0) + ":" + SquareNotation(9) + ":" + SquareNotation(18)
	if got := m.String(); got != want {
		t.Fatalf("Move.String() = %q, want %q", got, want)
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	cases := []Move{
		{From: 8, Path: []int{12}},
		{From: 0, Path: []int{9, 18}, Capture: true},
	}
	for _, m := range cases {
		s := m.String()
		got, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if !reflect.DeepEqual(got, m) {
			t.Errorf("ParseMove(%q) = %+v, want %+v", s, got, m)
		}
	}
}

func TestDiffMoveReportsPlainMove(t *testing.T) {
	before := StartingPosition
	after := before
	after.Move(20, 16)
	after.EndTurn()

	m := DiffMove(before, after)
	if m.From != 20 || len(m.Path) != 1 || m.Path[0] != 16 || m.Capture {
		t.Fatalf("DiffMove = %+v, want plain move 20-16", m)
	}
}

func TestDiffMoveReportsCompoundCaptureEndpoints(t *testing.T) {
	before := Position{
		White: FromIndex(0),
		Black: FromIndex(4) | FromIndex(13),
	}
	after := before.Successors()[0]

	m := DiffMove(before, after)
	if m.From != 0 || len(m.Path) != 1 || m.Path[0] != 18 || !m.Capture {
		t.Fatalf("DiffMove = %+v, want capture 0:...:18", m)
	}
}
