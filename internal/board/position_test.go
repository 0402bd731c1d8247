package board

import "testing"

func TestStartingPositionInvariants(t *testing.T) {
	p := StartingPosition
	if p.Black&p.White != Empty {
		t.Fatalf("black and white must not overlap")
	}
	if p.Queens&^(p.Black|p.White) != Empty {
		t.Fatalf("queens must be a subset of occupied squares")
	}
	if p.SinceCapture < 0 || p.SinceCapture > movesTillDraw {
		t.Fatalf("since_capture out of range: %d", p.SinceCapture)
	}
	if p.Black.PopCount() != 12 || p.White.PopCount() != 12 {
		t.Fatalf("starting position should have 12 stones per side")
	}
}

func TestCoordsIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < 32; idx++ {
		file, rank := IndexToCoords(idx)
		if got := CoordsToIndex(file, rank); got != idx {
			t.Errorf("index %d -> coords (%d,%d) -> index %d", idx, file, rank, got)
		}
		if got := FromCoords(file, rank); got != FromIndex(idx) {
			t.Errorf("FromCoords(%d,%d) = %#x, want %#x", file, rank, got, FromIndex(idx))
		}
	}
}

func TestSquareNotationRoundTrip(t *testing.T) {
	for idx := 0; idx < 32; idx++ {
		s := SquareNotation(idx)
		got, err := ParseSquareNotation(s)
		if err != nil {
			t.Fatalf("ParseSquareNotation(%q): %v", s, err)
		}
		if got != idx {
			t.Errorf("square %d -> %q -> %d", idx, s, got)
		}
	}
}

func TestBitsOfEnumeratesAscending(t *testing.T) {
	b := FromIndex(3) | FromIndex(7) | FromIndex(20)
	got := BitsOf(b)
	want := []int{3, 7, 20}
	if !sameInts(got, want) {
		t.Fatalf("BitsOf(%#x) = %v, want %v", b, got, want)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	p := StartingPosition
	p.SinceCapture = 17
	p.BlackTurn = true

	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != 14 {
		t.Fatalf("encoded length = %d, want 14", len(data))
	}

	var got Position
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestFromIndexPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range index")
		}
	}()
	FromIndex(32)
}

func TestParseSquareNotationRejectsLightSquare(t *testing.T) {
	if _, err := ParseSquareNotation("a2"); err == nil {
		t.Fatalf("expected error for a light square")
	}
}
