package eval_test

import (
	"testing"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobilityEvaluateSymmetricAtStart(t *testing.T) {
	p := board.FromStartingPosition()
	score := eval.Mobility{}.Evaluate(p)

	ks, sc, ok := score.Heuristic()
	require.True(t, ok)
	assert.Equal(t, 0, ks, "the starting position is symmetric: king safety must be 0")
	assert.Equal(t, 0, sc, "the starting position is symmetric: square control must be 0")
}

func TestMobilityEvaluateFavorsMaterialAdvantage(t *testing.T) {
	// White has an extra queen: White's mobility should dominate Black's.
	p, err := board.FromHashable([]board.Placement{
		{Square: mustSquare(t, "e1"), Color: board.White, Kind: board.King},
		{Square: mustSquare(t, "d1"), Color: board.White, Kind: board.Queen},
		{Square: mustSquare(t, "e8"), Color: board.Black, Kind: board.King},
	}, board.White, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	score := eval.Mobility{}.Evaluate(p)
	assert.True(t, eval.DrawScore.Less(score), "white's extra queen must score above a dead-even draw")
}

func TestScoreOrdering(t *testing.T) {
	assert.True(t, eval.NegInf.Less(eval.DrawScore))
	assert.True(t, eval.DrawScore.Less(eval.Inf))
	assert.True(t, eval.NegInf.Less(eval.Inf))

	est := eval.Estimated(1, 1)
	assert.True(t, eval.DrawScore.Less(est))
	assert.True(t, est.Less(eval.Inf))
	assert.True(t, eval.NegInf.Less(est))

	negEst := eval.Estimated(-1, 1)
	assert.True(t, negEst.Less(eval.DrawScore))
}

func TestScoreIsWinIsDraw(t *testing.T) {
	w := eval.Win(board.White)
	winner, ok := w.IsWin()
	assert.True(t, ok)
	assert.Equal(t, board.White, winner)
	assert.False(t, w.IsDraw())

	assert.True(t, eval.DrawScore.IsDraw())
	_, ok = eval.DrawScore.IsWin()
	assert.False(t, ok)
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return sq
}
