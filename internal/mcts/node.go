// Package mcts implements the leaf-parallel Monte Carlo Tree Search driver
// used to pick a move: an arena-allocated tree of positions, UCB1
// selection with virtual loss, batched simulation through a pluggable
// Simulator, and visit-count back-propagation.
package mcts

import "github.com/arzhanov/draughtsmcts/internal/board"

// nodeIndex is an arena offset into Tree.nodes. Index 0 is always the root
// and doubles as the "no child" / "no sibling" sentinel: no non-root node
// ever points back to the root as a child or sibling.
type nodeIndex = uint32

// Node is one arena-allocated search-tree node: the position it represents,
// arena indices for its first child and next sibling, and the accumulated
// visit/win statistics UCB1 selection reads.
//
// The tree is rebuilt from scratch at the start of every FindBestMove call
// rather than reused across turns — there is no persistent tree reuse
// between moves.
type Node struct {
	Position board.Position
	Child    nodeIndex
	Next     nodeIndex
	Visits   uint32
	Wins     uint32
}
