// Package search implements the game tree and the bounded-depth search over
// it: a classic (non-sign-flipping) alpha-beta walk, where White maximizes
// and Black minimizes, with iterative deepening, a cooperative stop flag, and
// optional parallelism at shallow plies.
package search

import (
	"sync"

	"github.com/rook960/engine/pkg/board"
)

// Node is a node in the lazily expanded game tree: it owns a Position, a
// once-computed terminal state, and on-demand children keyed by the move
// that produces them. Children are built from the parent's Position only
// when first needed, since most nodes speculatively constructed during
// search are never revisited.
type Node struct {
	Position *board.Position

	endOnce sync.Once
	end     board.EndState
	isEnd   bool

	children map[board.Move]*Node
}

// NewNode returns a fresh, unexpanded node for pos.
func NewNode(pos *board.Position) *Node {
	return &Node{Position: pos}
}

// EndState returns the node's terminal state, computing and caching it on
// first call.
func (n *Node) EndState() (board.EndState, bool) {
	n.endOnce.Do(func() {
		n.end, n.isEnd = board.EndStateOf(n.Position)
	})
	return n.end, n.isEnd
}

// Children lazily expands the node into one child per legal move.
func (n *Node) Children() map[board.Move]*Node {
	if n.children == nil {
		moves := board.GenerateLegalMoves(n.Position)
		children := make(map[board.Move]*Node, len(moves))
		for _, m := range moves {
			children[m] = NewNode(n.Position.ApplyMove(m))
		}
		n.children = children
	}
	return n.children
}

// Child re-roots the tree at the child reached by playing m, promoting an
// already-expanded subtree if one exists and building a fresh node
// otherwise. The rest of the tree is dropped: it is a strict tree with no
// back pointers, so the abandoned siblings are simply left for the garbage
// collector.
func (n *Node) Child(m board.Move) *Node {
	if n.children != nil {
		if child, ok := n.children[m]; ok {
			return child
		}
	}
	return NewNode(n.Position.ApplyMove(m))
}
