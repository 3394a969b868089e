package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/lang"
)

// PV is the principal variation found by a completed search iteration.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	var sb strings.Builder
	for i, m := range p.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(board.FormatMove(m, false))
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, sb.String())
}

// Options hold the dynamic options of a single search call.
type Options struct {
	// DepthLimit, if set, bounds iterative deepening to the given ply depth.
	DepthLimit lang.Optional[uint]
	// ParallelDepth is how many plies from the root are evaluated on a
	// scoped worker pool; deeper than that, the search runs sequentially.
	ParallelDepth uint
	// TimeControl, if set, bounds the search to a soft/hard deadline.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if o.ParallelDepth > 0 {
		parts = append(parts, fmt.Sprintf("parallel=%v", o.ParallelDepth))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher starts a new iteratively-deepening search.
type Launcher interface {
	// Launch begins searching from root. It returns a Handle to stop the
	// search and a channel of progressively deeper PVs; the channel closes
	// when the search is exhausted or halted.
	Launch(ctx context.Context, root *Node, e eval.Evaluator, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop an active search.
type Handle interface {
	// Halt stops the search, if running, and returns its best PV so far.
	// Idempotent.
	Halt() PV
}
