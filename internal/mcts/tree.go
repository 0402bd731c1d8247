package mcts

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/arzhanov/draughtsmcts/internal/board"
)

// Default tuning constants, ported from the reference search driver.
const (
	DefaultExplorationConstant = 1.41421356 // sqrt(2)
	DefaultVirtualLoss         = 0.01
	startNodeCapacity          = 250000
)

// Tree is one MCTS search: an arena of nodes rooted at whatever position
// FindBestMove was last called with, plus the scratch buffers the search
// loop reuses every iteration. A Tree is not safe for concurrent use — one
// goroutine drives FindBestMove at a time, though the Simulator it calls
// into is free to run playouts in parallel internally.
type Tree struct {
	simulator            Simulator
	maxIterations        int
	maxTime              time.Duration
	selectCount          int
	explorationConstant  float64
	virtualLossIncrement float64

	nodes       []Node
	virtualLoss []float64

	// Scratch state for the iteration currently in flight.
	paths    [][]nodeIndex
	selected []board.Position

	lastStats Stats
}

// Stats summarizes the most recently completed FindBestMove call, the Go
// counterpart of the reference implementation's Tree::GetBestMove stat
// lines (node count, total simulations, winning child's win rate).
type Stats struct {
	NodeCount   int
	Simulations uint32
	WinRate     float64 // winning child's Wins/Visits, in [0,1]
}

// Config bundles the tunables a Tree is built with; DefaultExplorationConstant
// and DefaultVirtualLoss are the reference defaults.
type Config struct {
	MaxIterations        int
	MaxTime              time.Duration
	SelectCount          int
	ExplorationConstant  float64
	VirtualLossIncrement float64
}

// NewTree builds a Tree driving simulator with the given configuration.
// Zero-valued ExplorationConstant/VirtualLossIncrement fall back to the
// package defaults.
func NewTree(simulator Simulator, cfg Config) *Tree {
	explorationConstant := cfg.ExplorationConstant
	if explorationConstant == 0 {
		explorationConstant = DefaultExplorationConstant
	}
	virtualLossIncrement := cfg.VirtualLossIncrement
	if virtualLossIncrement == 0 {
		virtualLossIncrement = DefaultVirtualLoss
	}
	selectCount := cfg.SelectCount
	if selectCount <= 0 {
		selectCount = 1
	}

	t := &Tree{
		simulator:            simulator,
		maxIterations:        cfg.MaxIterations,
		maxTime:              cfg.MaxTime,
		selectCount:          selectCount,
		explorationConstant:  explorationConstant,
		virtualLossIncrement: virtualLossIncrement,
	}
	t.nodes = make([]Node, 0, startNodeCapacity)
	t.virtualLoss = make([]float64, 0, startNodeCapacity)
	return t
}

// FindBestMove runs the search from position until it has exhausted its
// iteration budget, its time budget, or cancelled is set, then returns the
// position reached by the root's most-visited child.
//
// cancelled is checked at the start of every iteration; once it is observed
// set, FindBestMove returns the zero Position.
func (t *Tree) FindBestMove(position board.Position, cancelled *atomic.Bool) board.Position {
	t.nodes = t.nodes[:0]
	t.virtualLoss = t.virtualLoss[:0]
	t.nodes = append(t.nodes, Node{Position: position})
	t.virtualLoss = append(t.virtualLoss, 0)

	budget := newTimeBudget(t.maxTime)
	budget.begin()

	for i := 0; i < t.maxIterations; i++ {
		if cancelled != nil && cancelled.Load() {
			return board.Position{}
		}
		if budget.expired() {
			break
		}

		t.runIteration()
	}

	return t.getBestMove()
}

// runIteration performs one select/expand/simulate/back-propagate round,
// selecting up to selectCount leaves in a leaf-parallel batch before
// handing them to the simulator together.
func (t *Tree) runIteration() {
	t.paths = t.paths[:0]
	t.selected = t.selected[:0]

	pathCount := 0
	for len(t.selected) < t.selectCount {
		index := t.selectNode()
		if index == 0 && t.nodes[0].Child != 0 {
			break
		}

		t.expand(index)

		for j := pathCount; j < len(t.paths); j++ {
			for _, idx := range t.paths[j] {
				t.virtualLoss[idx] += t.virtualLossIncrement
			}
		}
		pathCount = len(t.paths)
	}

	blackInc := make([]int, len(t.paths))
	whiteInc := make([]int, len(t.paths))
	visitsInc := make([]int, len(t.paths))
	t.simulator.Simulate(context.Background(), t.selected, blackInc, whiteInc, visitsInc)

	t.backPropagate(blackInc, whiteInc, visitsInc)
}

// selectNode walks from the root by UCB1 score (minus virtual loss) until
// it reaches a node with no children, recording the path taken.
func (t *Tree) selectNode() nodeIndex {
	t.paths = append(t.paths, nil)
	path := &t.paths[len(t.paths)-1]

	cur := nodeIndex(0)
	for t.nodes[cur].Child != 0 {
		*path = append(*path, cur)

		totalVisits := float64(t.nodes[cur].Visits)
		bestScore := math.Inf(-1)
		best := cur

		for child := t.nodes[cur].Child; child != 0; child = t.nodes[child].Next {
			score := t.nodeScore(child, totalVisits) - t.virtualLoss[child]
			if score > bestScore {
				bestScore = score
				best = child
			}
		}
		cur = best
	}
	return cur
}

// nodeScore is the UCB1 value of index given its parent's total visits,
// before virtual loss is subtracted.
func (t *Tree) nodeScore(index nodeIndex, totalVisits float64) float64 {
	node := &t.nodes[index]
	visits := float64(node.Visits)
	if node.Visits == 0 {
		visits = 1
	}
	winrate := float64(node.Wins) / visits
	return winrate + t.explorationConstant*math.Sqrt(math.Log(totalVisits)/visits)
}

// expand queues index itself for simulation if it hasn't been visited yet,
// is terminal, or already has children. Otherwise it generates every child
// of index's position in one shot and queues the first child, forking a
// fresh path for each sibling while the batch has room, so a single
// expansion can fill an entire leaf-parallel batch (this is how the root's
// first expansion, in the second iteration, puts the root's children into
// one batch).
func (t *Tree) expand(index nodeIndex) {
	last := len(t.paths) - 1
	t.paths[last] = append(t.paths[last], index)

	node := t.nodes[index]
	if node.Visits == 0 || node.Child != 0 || node.Position.HasLost() || node.Position.IsDraw() {
		t.selected = append(t.selected, node.Position)
		return
	}

	successors := node.Position.Successors()

	firstChild := nodeIndex(len(t.nodes))
	t.nodes[index].Child = firstChild
	for i, s := range successors {
		child := Node{Position: s}
		if i < len(successors)-1 {
			child.Next = nodeIndex(len(t.nodes) + 1)
		}
		t.nodes = append(t.nodes, child)
		t.virtualLoss = append(t.virtualLoss, 0)
	}

	// base is the path from the root down to (and including) index itself —
	// every forked sibling path extends this same prefix.
	base := append([]nodeIndex(nil), t.paths[last]...)

	child := firstChild
	t.paths[last] = append(t.paths[last], child)
	t.selected = append(t.selected, t.nodes[child].Position)
	child = t.nodes[child].Next

	for child != 0 && len(t.selected) < t.selectCount {
		path := append(append([]nodeIndex(nil), base...), child)
		t.paths = append(t.paths, path)
		t.selected = append(t.selected, t.nodes[child].Position)
		child = t.nodes[child].Next
	}
}

// backPropagate credits every node on each selected path with the
// simulator's reported outcome for that path's leaf, and clears the
// virtual loss the selection phase added.
func (t *Tree) backPropagate(blackInc, whiteInc, visitsInc []int) {
	for i, path := range t.paths {
		for _, idx := range path {
			node := &t.nodes[idx]
			node.Visits += uint32(visitsInc[i])
			if !node.Position.BlackTurn {
				node.Wins += uint32(blackInc[i])
			} else {
				node.Wins += uint32(whiteInc[i])
			}
			t.virtualLoss[idx] = 0
		}
	}
}

// getBestMove returns the position of the root's most-visited child, or
// the zero Position if the root was never expanded, and records Stats
// for LastStats to report afterwards.
func (t *Tree) getBestMove() board.Position {
	if t.nodes[0].Child == 0 {
		t.lastStats = Stats{NodeCount: len(t.nodes), Simulations: t.nodes[0].Visits}
		return board.Position{}
	}

	var maxVisits uint32
	var maxIndex nodeIndex

	for child := t.nodes[0].Child; child != 0; child = t.nodes[child].Next {
		if t.nodes[child].Visits > maxVisits {
			maxVisits = t.nodes[child].Visits
			maxIndex = child
		}
	}

	t.lastStats = Stats{NodeCount: len(t.nodes), Simulations: t.nodes[0].Visits}
	if maxVisits > 0 {
		t.lastStats.WinRate = float64(t.nodes[maxIndex].Wins) / float64(maxVisits)
	}

	return t.nodes[maxIndex].Position
}

// LastStats reports Stats for the most recently completed FindBestMove
// call. Its zero value before any search has run has a zero NodeCount.
func (t *Tree) LastStats() Stats {
	return t.lastStats
}
