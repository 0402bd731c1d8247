package mcts

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arzhanov/draughtsmcts/internal/board"
)

// recordingSimulator remembers the batch sizes it was asked to simulate,
// and always scores every leaf as a white win.
type recordingSimulator struct {
	batchSizes []int
}

func (s *recordingSimulator) Simulate(ctx context.Context, positions []board.Position, blackInc, whiteInc, visitsInc []int) {
	s.batchSizes = append(s.batchSizes, len(positions))
	for i := range positions {
		whiteInc[i] = 2
		visitsInc[i] = 2
	}
}

func TestRootExpansionBatchesAllChildren(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 2, MaxTime: time.Second, SelectCount: 16})

	var cancelled atomic.Bool
	tree.FindBestMove(board.StartingPosition, &cancelled)

	if len(sim.batchSizes) < 2 {
		t.Fatalf("expected at least 2 simulate calls, got %d", len(sim.batchSizes))
	}
	// First iteration: the root is unvisited and childless, so every select
	// returns it and the batch fills up with SelectCount copies of it.
	if sim.batchSizes[0] != 16 {
		t.Errorf("first batch should hold 16 copies of the unvisited root, got %d", sim.batchSizes[0])
	}
	// Second iteration expands the root: all 7 starting-position successors
	// (White's pawns on 20, 21, 22, 23 have 2+2+2+1 moves) join the batch in
	// one shot, and the remaining slots go to re-selected, still-unvisited
	// children.
	children := 0
	for c := tree.nodes[0].Child; c != 0; c = tree.nodes[c].Next {
		children++
	}
	if children != 7 {
		t.Errorf("root expansion should create all %d successors, got %d", 7, children)
	}
	if sim.batchSizes[1] != 16 {
		t.Errorf("second batch should be full (%d leaves), got %d", 16, sim.batchSizes[1])
	}
}

func TestFindBestMoveReturnsALegalSuccessor(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 50, MaxTime: time.Second, SelectCount: 8})

	var cancelled atomic.Bool
	best := tree.FindBestMove(board.StartingPosition, &cancelled)

	succ := board.StartingPosition.Successors()
	found := false
	for _, s := range succ {
		if s == best {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("FindBestMove returned a position that is not a legal successor: %+v", best)
	}
}

func TestFindBestMoveHonorsCancellation(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 1_000_000, MaxTime: time.Hour, SelectCount: 8})

	var cancelled atomic.Bool
	cancelled.Store(true)

	got := tree.FindBestMove(board.StartingPosition, &cancelled)
	if got != (board.Position{}) {
		t.Fatalf("expected zero Position on immediate cancellation, got %+v", got)
	}
}

func TestFindBestMoveHonorsTimeBudget(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 1_000_000_000, MaxTime: 10 * time.Millisecond, SelectCount: 4})

	var cancelled atomic.Bool
	start := time.Now()
	tree.FindBestMove(board.StartingPosition, &cancelled)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("search ran for %v, expected it to stop near its 10ms budget", elapsed)
	}
}

func TestUCBScorePrefersHigherWinrateAtEqualVisits(t *testing.T) {
	tree := NewTree(&recordingSimulator{}, Config{ExplorationConstant: 1.0})
	tree.nodes = []Node{
		{Visits: 10},
		{Visits: 5, Wins: 4},
		{Visits: 5, Wins: 1},
	}
	tree.virtualLoss = []float64{0, 0, 0}

	hi := tree.nodeScore(1, 10)
	lo := tree.nodeScore(2, 10)
	if hi <= lo {
		t.Fatalf("expected higher win rate to score higher: hi=%v lo=%v", hi, lo)
	}
}

func TestVirtualLossDiscouragesRepeatedSelection(t *testing.T) {
	tree := NewTree(&recordingSimulator{}, Config{ExplorationConstant: 1.0})
	tree.nodes = []Node{
		{Visits: 10},
		{Visits: 5, Wins: 4},
	}
	tree.virtualLoss = []float64{0, 0}

	before := tree.nodeScore(1, 10) - tree.virtualLoss[1]
	tree.virtualLoss[1] = 5
	after := tree.nodeScore(1, 10) - tree.virtualLoss[1]

	if after >= before {
		t.Fatalf("virtual loss should lower the effective score: before=%v after=%v", before, after)
	}
}

func TestFindBestMoveRecordsStats(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 20, MaxTime: time.Second, SelectCount: 8})

	var cancelled atomic.Bool
	tree.FindBestMove(board.StartingPosition, &cancelled)

	stats := tree.LastStats()
	if stats.NodeCount <= 1 {
		t.Fatalf("expected the arena to have grown past the root, got NodeCount=%d", stats.NodeCount)
	}
	if stats.Simulations == 0 {
		t.Fatalf("expected a nonzero simulation count")
	}
	// recordingSimulator always scores a white win, so every child's win
	// rate should be 100%.
	if stats.WinRate != 1.0 {
		t.Fatalf("expected a win rate of 1.0 against an always-winning simulator, got %v", stats.WinRate)
	}
}

func TestFindBestMoveReturnsZeroPositionWhenRootNeverExpands(t *testing.T) {
	sim := &recordingSimulator{}
	tree := NewTree(sim, Config{MaxIterations: 0, MaxTime: time.Second, SelectCount: 8})

	var cancelled atomic.Bool
	got := tree.FindBestMove(board.StartingPosition, &cancelled)
	if got != (board.Position{}) {
		t.Fatalf("expected the zero Position when the root has no children, got %+v", got)
	}

	stats := tree.LastStats()
	if stats.NodeCount != 1 {
		t.Fatalf("expected NodeCount=1 (root only), got %d", stats.NodeCount)
	}
}

func TestEngineDifficultyChangesBudget(t *testing.T) {
	sim := &recordingSimulator{}
	e := NewEngine(sim)
	e.SetDifficulty(Easy)

	if e.tree.maxIterations != DifficultySettings[Easy].MaxIterations {
		t.Fatalf("Easy difficulty did not apply its iteration budget")
	}
}

func TestEngineCancelSearch(t *testing.T) {
	sim := &recordingSimulator{}
	e := NewEngine(sim)
	e.tree = NewTree(sim, Config{MaxIterations: 1_000_000_000, MaxTime: time.Hour, SelectCount: 4})

	done := make(chan board.Position, 1)
	go func() {
		done <- e.FindBestMove(board.StartingPosition)
	}()

	// give the search time to start: FindBestMove clears the flag on entry,
	// so only a cancel issued while it is in flight stops it.
	time.Sleep(10 * time.Millisecond)
	e.CancelSearch()

	select {
	case got := <-done:
		if got != (board.Position{}) {
			t.Fatalf("expected cancelled search to return the zero Position, got %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("CancelSearch did not stop the search in time")
	}
}
