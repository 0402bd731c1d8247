package controller

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arzhanov/draughtsmcts/internal/board"
	"github.com/arzhanov/draughtsmcts/internal/mcts"
)

// xy returns the board-relative click coordinates for a square index.
func xy(idx int) (float64, float64) {
	i, j := board.IndexToCoords(idx)
	return (float64(i) + 0.5) / 8, (float64(j) + 0.5) / 8
}

func TestHumanControllerPlainMove(t *testing.T) {
	c := NewHumanController()

	done := make(chan board.Position, 1)
	go func() {
		done <- c.MakeMove(board.StartingPosition)
	}()

	// give MakeMove time to set c.working before clicking.
	time.Sleep(10 * time.Millisecond)

	// White moves first; 20 is one of White's front-rank stones and 16 is
	// one of its legal destinations.
	x, y := xy(20)
	c.OnClick(x, y)
	x, y = xy(16)
	c.OnClick(x, y)

	select {
	case got := <-done:
		if !got.White.HasBit(16) || got.White.HasBit(20) {
			t.Fatalf("expected the stone to move from 20 to 16, got %+v", got)
		}
		if !got.BlackTurn {
			t.Fatalf("turn should have passed to black")
		}
	case <-time.After(time.Second):
		t.Fatalf("MakeMove did not complete")
	}
}

func TestHumanControllerSelectedReportsPendingSelection(t *testing.T) {
	c := NewHumanController()

	if sq, moves := c.Selected(); sq != board.NoSquare || moves != board.Empty {
		t.Fatalf("expected no selection before MakeMove, got %d %v", sq, moves)
	}

	done := make(chan board.Position, 1)
	go func() {
		done <- c.MakeMove(board.StartingPosition)
	}()
	time.Sleep(10 * time.Millisecond)

	x, y := xy(20)
	c.OnClick(x, y)

	sq, moves := c.Selected()
	if sq != board.Square(20) {
		t.Fatalf("expected square 20 selected, got %d", sq)
	}
	if !moves.HasBit(16) {
		t.Fatalf("expected 16 among the reported legal destinations, got %v", moves)
	}

	x, y = xy(16)
	c.OnClick(x, y)
	<-done

	if sq, _ := c.Selected(); sq != board.NoSquare {
		t.Fatalf("expected selection cleared once the turn completed, got %d", sq)
	}
}

func TestHumanControllerRefusesNonCapturingStoneWhenCaptureIsMandatory(t *testing.T) {
	c := NewHumanController()
	pos := board.Position{
		White: board.FromIndex(8) | board.FromIndex(20),
		Black: board.FromIndex(12),
	}

	done := make(chan board.Position, 1)
	go func() {
		done <- c.MakeMove(pos)
	}()
	time.Sleep(10 * time.Millisecond)

	// square 20 has no capture available; selecting it should be refused
	// because square 8 must capture.
	x, y := xy(20)
	c.OnClick(x, y)
	if c.selectedIndex != int(board.NoSquare) {
		t.Fatalf("expected selection to be refused, got index %d", c.selectedIndex)
	}

	c.CancelMove()
	select {
	case got := <-done:
		if got != (board.Position{}) {
			t.Fatalf("expected cancellation to return the zero Position")
		}
	case <-time.After(time.Second):
		t.Fatalf("CancelMove did not unblock MakeMove")
	}
}

func TestConsoleControllerAppliesPlainMove(t *testing.T) {
	line := board.SquareNotation(20) + "-" + board.SquareNotation(16) + "\n"
	c := NewConsoleController(bufio.NewScanner(strings.NewReader(line)))

	got := c.MakeMove(board.StartingPosition)
	if !got.White.HasBit(16) || got.White.HasBit(20) {
		t.Fatalf("expected the stone to move from 20 to 16, got %+v", got)
	}
	if !got.BlackTurn {
		t.Fatalf("turn should have passed to black")
	}
}

func TestConsoleControllerAppliesCapture(t *testing.T) {
	// White at 8 jumps Black at 12, landing on 17 (the same geometry as
	// board.TestMandatoryCaptureOverridesPlainMove).
	pos := board.Position{
		White: board.FromIndex(8),
		Black: board.FromIndex(12),
	}
	line := board.SquareNotation(8) + ":" + board.SquareNotation(17) + "\n"
	c := NewConsoleController(bufio.NewScanner(strings.NewReader(line)))

	got := c.MakeMove(pos)
	if !got.White.HasBit(17) || got.White.HasBit(8) {
		t.Fatalf("expected the stone to land on 17, got %+v", got)
	}
	if got.Black != board.Empty {
		t.Fatalf("expected the jumped stone at 12 to be captured, got %+v", got.Black)
	}
}

func TestConsoleControllerRetriesOnMalformedInput(t *testing.T) {
	lines := "not-a-move\n" + board.SquareNotation(20) + "-" + board.SquareNotation(16) + "\n"
	c := NewConsoleController(bufio.NewScanner(strings.NewReader(lines)))

	got := c.MakeMove(board.StartingPosition)
	if !got.White.HasBit(16) {
		t.Fatalf("expected the controller to recover after a bad line, got %+v", got)
	}
}

func TestConsoleControllerReturnsZeroPositionAtEOF(t *testing.T) {
	c := NewConsoleController(bufio.NewScanner(strings.NewReader("")))
	if got := c.MakeMove(board.StartingPosition); got != (board.Position{}) {
		t.Fatalf("expected the zero Position at EOF, got %+v", got)
	}
}

// fakeSimulator scores every leaf as a 2-visit white win, enough to drive
// a deterministic ComputerController test.
type fakeSimulator struct{}

func (fakeSimulator) Simulate(ctx context.Context, positions []board.Position, blackInc, whiteInc, visitsInc []int) {
	for i := range positions {
		whiteInc[i] = 2
		visitsInc[i] = 2
	}
}

func TestComputerControllerReturnsALegalMove(t *testing.T) {
	engine := mcts.NewEngine(fakeSimulator{})
	engine.SetDifficulty(mcts.Easy)

	c := NewComputerController(engine)
	got := c.MakeMove(board.StartingPosition)

	found := false
	for _, s := range board.StartingPosition.Successors() {
		if s == got {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("ComputerController.MakeMove returned a non-successor position")
	}
}

func TestComputerControllerCancel(t *testing.T) {
	engine := mcts.NewEngine(fakeSimulator{})
	engine.SetDifficulty(mcts.Hard) // large budget so cancellation matters

	done := make(chan board.Position, 1)
	c := NewComputerController(engine)
	go func() {
		done <- c.MakeMove(board.StartingPosition)
	}()

	// give the search time to start: a cancel only reaches a search that is
	// already in flight.
	time.Sleep(10 * time.Millisecond)
	c.CancelMove()

	select {
	case got := <-done:
		if got != (board.Position{}) {
			t.Fatalf("expected cancelled search to return the zero Position")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("CancelMove did not stop the search in time")
	}
}
