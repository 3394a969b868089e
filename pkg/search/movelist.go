package search

import (
	"container/heap"

	"github.com/rook960/engine/pkg/board"
)

// Priority orders candidate moves before they are searched: a good early
// ordering lets alpha-beta prune more of the tree. There is no material
// table in this engine's evaluator, so priority is coarse: promotions
// first (queen highest), then captures, then everything else.
type Priority int16

func defaultPriority(m board.Move) Priority {
	switch {
	case m.IsPromotion():
		switch m.Promotion {
		case board.Queen:
			return 400
		case board.Rook:
			return 300
		case board.Bishop, board.Knight:
			return 200
		}
	case m.IsCapture():
		return 100
	}
	return 0
}

// First gives the wrapped move top priority and falls back to
// defaultPriority for everything else; used to explore the previous
// iteration's best move first.
type First board.Move

func (f First) priority(m board.Move) Priority {
	if board.Move(f) == m {
		return 1000
	}
	return defaultPriority(m)
}

// MoveList orders candidate moves by descending priority for search,
// highest first.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds an ordering of moves, scored by fn.
func NewMoveList(moves []board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the highest-priority remaining move.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.h.Len() == 0 {
		return board.Move{}, false
	}
	e := heap.Pop(&ml.h).(elm)
	return e.m, true
}

type elm struct {
	m   board.Move
	val Priority
}

// moveLess is a total order over distinct moves, used to break priority
// ties so that ordering (and therefore search) is deterministic regardless
// of the map iteration order the moves arrived in.
func moveLess(a, b board.Move) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}
	return a.Promotion < b.Promotion
}

type moveHeap []elm

func (h moveHeap) Len() int { return len(h) }
func (h moveHeap) Less(i, j int) bool {
	if h[i].val != h[j].val {
		return h[i].val > h[j].val
	}
	return moveLess(h[i].m, h[j].m)
}
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// orderedMoves returns the moves of children ordered by defaultPriority,
// with pv (if non-zero) explored first.
func orderedMoves(children map[board.Move]*Node, pv board.Move) []board.Move {
	moves := make([]board.Move, 0, len(children))
	for m := range children {
		moves = append(moves, m)
	}
	priority := First(pv).priority

	ml := NewMoveList(moves, priority)
	out := make([]board.Move, 0, len(moves))
	for {
		m, ok := ml.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}
