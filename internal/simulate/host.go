// Package simulate provides playout implementations of the mcts.Simulator
// contract: given a batch of leaf positions selected by one search
// iteration, play each one out to a result and report win/visit increments
// back to the tree.
package simulate

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arzhanov/draughtsmcts/internal/board"
)

// maxPlayoutPlies caps a single random playout so a cycle of reversible
// king moves can't stall a rollout forever; hitting the cap scores the
// playout a draw, same as the 30-ply no-capture rule.
const maxPlayoutPlies = 40

// HostSimulator runs uniformly-random playouts on the CPU, one rollout per
// leaf position in the batch, fanning the batch out across a bounded pool
// of goroutines.
type HostSimulator struct {
	workers int
}

// NewHostSimulator returns a HostSimulator that runs up to workers
// rollouts concurrently. workers <= 0 falls back to runtime.GOMAXPROCS(0).
func NewHostSimulator(workers int) *HostSimulator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &HostSimulator{workers: workers}
}

// Simulate implements mcts.Simulator: every leaf gets exactly one rollout,
// worth 2 visits, matching the reference host implementation.
func (h *HostSimulator) Simulate(ctx context.Context, positions []board.Position, blackInc, whiteInc, visitsInc []int) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			rng := rand.New(rand.NewSource(rand.Int63()))
			black, white := playout(pos, rng)
			blackInc[i] = black
			whiteInc[i] = white
			visitsInc[i] = 2
			return ctx.Err()
		})
	}
	_ = g.Wait()
}

// playout plays pos to a conclusion with uniformly random moves and
// returns the (blackInc, whiteInc) pair the tree should back-propagate:
// 2 for the winner and 0 for the loser, or 1/1 on a draw.
func playout(pos board.Position, rng *rand.Rand) (blackInc, whiteInc int) {
	ply := 0
	for !pos.HasLost() && !pos.IsDraw() && ply < maxPlayoutPlies {
		randomMove(&pos, rng)
		pos.EndTurn()
		ply++
	}

	if pos.IsDraw() || ply == maxPlayoutPlies {
		return 1, 1
	}
	// pos.HasLost(): the side to move has no move or capture, so the other
	// side won this playout.
	if !pos.BlackTurn {
		return 2, 0
	}
	return 0, 2
}

// randomMove applies one uniformly random legal move to pos: a full
// mandatory compound capture if one is available, otherwise a single
// plain move.
func randomMove(pos *board.Position, rng *rand.Rand) {
	if capturing := pos.GetAllCapturing(); !capturing.IsEmpty() {
		from := randomBit(rng, capturing)
		for {
			captures := pos.GetCaptures(board.FromIndex(from))
			to := randomBit(rng, captures)
			pos.Capture(from, to)
			from = to

			if pos.GetCaptures(board.FromIndex(from)).IsEmpty() {
				return
			}
		}
	}

	var moves [][2]int
	for _, from := range board.BitsOf(pos.GetAllMoving()) {
		for _, to := range board.BitsOf(pos.GetMoves(board.FromIndex(from))) {
			moves = append(moves, [2]int{from, to})
		}
	}
	m := moves[rng.Intn(len(moves))]
	pos.Move(m[0], m[1])
}

// randomBit picks a uniformly random set bit of b.
func randomBit(rng *rand.Rand, b board.Bitboard) int {
	bits := board.BitsOf(b)
	return bits[rng.Intn(len(bits))]
}
