package search_test

import (
	"testing"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/board/fen"
	"github.com/rook960/engine/pkg/eval"
	"github.com/rook960/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestAlphaBetaDepth3FromStartNoPanicDeterministic(t *testing.T) {
	run := func() search.Result {
		root := search.NewNode(board.FromStartingPosition())
		stop := atomic.NewBool(false)
		return search.AlphaBeta(stop, eval.Mobility{}, root, 3, 0, eval.NegInf, eval.Inf)
	}

	a := run()
	require.True(t, a.HasMove, "search must find some legal move")
	assert.False(t, a.Aborted)

	b := run()
	assert.Equal(t, a.Move, b.Move, "parallelDepth=0 search must be deterministic")
	assert.Equal(t, 0, eval.Compare(a.Score, b.Score))
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	// White to move: Qa1-a8 is a back-rank mate, the black king boxed in by
	// its own pawns on f7/g7/h7 with the a-file and rank 8 wide open.
	p, _, _, err := fen.Decode("6k1/5ppp/8/8/8/8/8/Q6K w - - 0 1")
	require.NoError(t, err)

	root := search.NewNode(p)
	stop := atomic.NewBool(false)
	r := search.AlphaBeta(stop, eval.Mobility{}, root, 2, 0, eval.NegInf, eval.Inf)

	require.True(t, r.HasMove)
	winner, ok := r.Score.IsWin()
	assert.True(t, ok)
	assert.Equal(t, board.White, winner)
}

func TestAlphaBetaAbortsOnStop(t *testing.T) {
	root := search.NewNode(board.FromStartingPosition())
	stop := atomic.NewBool(true)
	r := search.AlphaBeta(stop, eval.Mobility{}, root, 4, 0, eval.NegInf, eval.Inf)
	assert.True(t, r.Aborted)
}

func TestAlphaBetaParallelAgreesWithSequentialMove(t *testing.T) {
	seq := func() search.Result {
		root := search.NewNode(board.FromStartingPosition())
		stop := atomic.NewBool(false)
		return search.AlphaBeta(stop, eval.Mobility{}, root, 2, 0, eval.NegInf, eval.Inf)
	}
	par := func() search.Result {
		root := search.NewNode(board.FromStartingPosition())
		stop := atomic.NewBool(false)
		return search.AlphaBeta(stop, eval.Mobility{}, root, 2, 1, eval.NegInf, eval.Inf)
	}

	a, b := seq(), par()
	require.True(t, a.HasMove)
	require.True(t, b.HasMove)
	assert.Equal(t, 0, eval.Compare(a.Score, b.Score), "best-effort parallel pruning must still find the same best score")
}
