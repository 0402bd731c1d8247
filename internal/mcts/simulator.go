package mcts

import (
	"context"

	"github.com/arzhanov/draughtsmcts/internal/board"
)

// Simulator runs playouts for a batch of leaf positions selected by one
// search iteration and reports each leaf's outcome back to the tree.
//
// blackInc, whiteInc and visitsInc are parallel to positions: for each
// index i, the implementation must add the black win increment to
// blackInc[i], the white win increment to whiteInc[i], and the visit
// increment for positions[i] (2 per playout run) to visitsInc[i]. The slices start
// zeroed; Simulate only ever adds to them.
type Simulator interface {
	Simulate(ctx context.Context, positions []board.Position, blackInc, whiteInc, visitsInc []int)
}
