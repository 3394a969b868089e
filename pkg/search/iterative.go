package search

import (
	"context"
	"sync"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Iterative is the search driver: it runs AlphaBeta at depth = 1, 2, ...
// retaining the best move and PV of the deepest fully completed iteration,
// and polling a shared stop flag so a deadline or an explicit Halt can
// cancel an in-flight iteration cooperatively.
type Iterative struct{}

func (it Iterative) Launch(ctx context.Context, root *Node, e eval.Evaluator, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		stop: atomic.NewBool(false),
		done: make(chan struct{}),
	}
	go h.run(ctx, root, e, opt, out)
	return h, out
}

type handle struct {
	stop *atomic.Bool
	done chan struct{}

	mu sync.Mutex
	pv PV
}

func (h *handle) run(ctx context.Context, root *Node, e eval.Evaluator, opt Options, out chan PV) {
	defer close(h.done)
	defer close(out)

	turn := root.Position.Turn()
	soft, useSoft := enforceTimeControl(h, opt.TimeControl, turn)

	depth := 1
	var pvMove board.Move
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if h.stop.Load() {
			return
		}

		start := time.Now()
		r := alphaBeta(h.stop, e, root, depth, int(opt.ParallelDepth), eval.NegInf, eval.Inf, pvMove)
		if r.Aborted {
			return // halted mid-iteration: keep the last completed PV.
		}
		if !r.HasMove {
			return // terminal root position: there is no move to report.
		}
		if len(r.PV) > 0 {
			pvMove = r.PV[0]
		}

		pv := PV{
			Depth: depth,
			Moves: r.PV,
			Score: r.Score,
			Nodes: r.Nodes,
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "searched %v to move: %v", turn, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case out <- pv:
		default:
			// drain the stale buffered PV before sending the fresh one
			select {
			case <-out:
			default:
			}
			out <- pv
		}

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) >= limit {
			return
		}
		if useSoft && soft < time.Since(start) {
			return
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	h.stop.Store(true)
	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
