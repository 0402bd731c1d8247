package mcts

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/arzhanov/draughtsmcts/internal/board"
)

// NumWorkers is the default parallel rollout width handed to a Simulator
// (matches CPU cores).
var NumWorkers = runtime.GOMAXPROCS(0)

// Difficulty selects a preset search budget.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps each Difficulty to the Config fields it drives.
// ExplorationConstant/VirtualLossIncrement use the package defaults at
// every difficulty; the time and iteration budget and the batch size
// (SelectCount) change.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {MaxIterations: 2_000, MaxTime: 300 * time.Millisecond, SelectCount: 8},
	Medium: {MaxIterations: 20_000, MaxTime: 1500 * time.Millisecond, SelectCount: 16},
	Hard:   {MaxIterations: 200_000, MaxTime: 5 * time.Second, SelectCount: 32},
}

// Engine is the move-picking front door: it owns a Tree, a cancellation
// flag, and the currently selected Difficulty.
type Engine struct {
	tree       *Tree
	difficulty Difficulty
	cancelled  atomic.Bool
}

// NewEngine builds an Engine that hands its simulation work to simulator,
// starting at Medium difficulty.
func NewEngine(simulator Simulator) *Engine {
	e := &Engine{difficulty: Medium}
	e.tree = NewTree(simulator, DifficultySettings[Medium])
	log.Printf("[mcts] engine ready, %d workers available", NumWorkers)
	return e
}

// SetDifficulty switches the search budget used by the next FindBestMove
// call.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
	e.tree = NewTree(e.tree.simulator, DifficultySettings[d])
}

// FindBestMove runs one MCTS search from position and returns the chosen
// successor position. It blocks until the search's time or iteration
// budget is exhausted, or until CancelSearch is called from another
// goroutine.
func (e *Engine) FindBestMove(position board.Position) board.Position {
	e.cancelled.Store(false)
	return e.tree.FindBestMove(position, &e.cancelled)
}

// CancelSearch requests that an in-flight FindBestMove return as soon as
// possible. It is safe to call from any goroutine and does not block.
func (e *Engine) CancelSearch() {
	e.cancelled.Store(true)
}

// LastStats reports node count, total simulations and the winning
// child's win rate from the most recently completed FindBestMove call.
func (e *Engine) LastStats() Stats {
	return e.tree.LastStats()
}
