package search

import (
	"sync"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"go.uber.org/atomic"
)

// Result is the outcome of searching one node. Aborted is set when the
// shared stop flag fired before the subtree finished; callers must not act
// on Move/Score/PV/Nodes in that case.
type Result struct {
	Move    board.Move
	HasMove bool
	Score   eval.Score
	PV      []board.Move
	Nodes   uint64
	Aborted bool
}

// AlphaBeta walks the game tree rooted at n to the given depth, maximizing
// for White and minimizing for Black over eval.Score, with alpha-beta
// pruning. At nodes within parallelDepth plies of the call's own root,
// children are evaluated on a scoped worker pool; below that, evaluation is
// sequential. stop is polled at every node entry: once set, the walk
// unwinds reporting Aborted, so the caller can fall back to the last fully
// completed iteration rather than trust a partial result.
func AlphaBeta(stop *atomic.Bool, e eval.Evaluator, n *Node, depth, parallelDepth int, alpha, beta eval.Score) Result {
	return alphaBeta(stop, e, n, depth, parallelDepth, alpha, beta, board.Move{})
}

// alphaBeta additionally explores pvMove first when it is one of n's legal
// moves: the iterative driver passes the best move of the previous,
// shallower iteration, which is usually still the best and tightens the
// bounds early.
func alphaBeta(stop *atomic.Bool, e eval.Evaluator, n *Node, depth, parallelDepth int, alpha, beta eval.Score, pvMove board.Move) Result {
	if stop.Load() {
		return Result{Aborted: true}
	}
	if end, ok := n.EndState(); ok {
		return Result{Score: eval.FromEndState(end), Nodes: 1}
	}
	if depth == 0 {
		return Result{Score: e.Evaluate(n.Position), Nodes: 1}
	}

	children := n.Children()
	maximize := n.Position.Turn() == board.White
	moves := orderedMoves(children, pvMove)

	if parallelDepth <= 0 {
		return searchSequential(stop, e, children, moves, depth, maximize, alpha, beta)
	}
	return searchParallel(stop, e, children, moves, depth, parallelDepth, maximize, alpha, beta)
}

func searchSequential(stop *atomic.Bool, e eval.Evaluator, children map[board.Move]*Node, moves []board.Move, depth int, maximize bool, alpha, beta eval.Score) Result {
	var nodes uint64 = 1
	best := seedScore(maximize)
	var bestMove board.Move
	var bestPV []board.Move
	hasMove := false

	for _, m := range moves {
		r := AlphaBeta(stop, e, children[m], depth-1, 0, alpha, beta)
		if r.Aborted {
			return Result{Aborted: true}
		}
		nodes += r.Nodes

		if !hasMove || improves(maximize, r.Score, best) {
			best = r.Score
			bestMove = m
			bestPV = append([]board.Move{m}, r.PV...)
			hasMove = true
		}

		if maximize {
			if eval.Compare(best, alpha) > 0 {
				alpha = best
			}
			if eval.Compare(alpha, beta) >= 0 {
				break // beta cutoff
			}
		} else {
			if eval.Compare(best, beta) < 0 {
				beta = best
			}
			if eval.Compare(beta, alpha) <= 0 {
				break // alpha cutoff
			}
		}
	}
	return Result{Move: bestMove, HasMove: hasMove, Score: best, PV: bestPV, Nodes: nodes}
}

// searchParallel dispatches each child to a scoped worker. Pruning across
// in-flight siblings is best-effort: every worker gets a value snapshot of
// alpha/beta taken at spawn time, and results are merged under a single
// mutex rather than feeding tightening bounds back to siblings still
// running. This loses some cutoffs but keeps the parallel region
// lock-free except for the final merge.
func searchParallel(stop *atomic.Bool, e eval.Evaluator, children map[board.Move]*Node, moves []board.Move, depth, parallelDepth int, maximize bool, alpha, beta eval.Score) Result {
	snapAlpha, snapBeta := alpha, beta

	var mu sync.Mutex
	var wg sync.WaitGroup
	var nodes uint64 = 1
	best := seedScore(maximize)
	var bestMove board.Move
	var bestPV []board.Move
	hasMove := false
	aborted := false

	for _, m := range moves {
		m, child := m, children[m]
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := AlphaBeta(stop, e, child, depth-1, parallelDepth-1, snapAlpha, snapBeta)

			mu.Lock()
			defer mu.Unlock()
			if r.Aborted {
				aborted = true
				return
			}
			nodes += r.Nodes
			if !hasMove || improves(maximize, r.Score, best) {
				best = r.Score
				bestMove = m
				bestPV = append([]board.Move{m}, r.PV...)
				hasMove = true
			}
		}()
	}
	wg.Wait()

	if aborted {
		return Result{Aborted: true}
	}
	return Result{Move: bestMove, HasMove: hasMove, Score: best, PV: bestPV, Nodes: nodes}
}

func seedScore(maximize bool) eval.Score {
	if maximize {
		return eval.NegInf
	}
	return eval.Inf
}

func improves(maximize bool, candidate, best eval.Score) bool {
	if maximize {
		return eval.Compare(candidate, best) > 0
	}
	return eval.Compare(candidate, best) < 0
}
