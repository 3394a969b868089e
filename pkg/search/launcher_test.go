package search_test

import (
	"testing"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"github.com/rook960/engine/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPVStringIncludesMovesAndScore(t *testing.T) {
	p := board.FromStartingPosition()
	m, err := board.ParseMove(p, "e2e4")
	require.NoError(t, err)

	pv := search.PV{
		Depth: 1,
		Moves: []board.Move{m},
		Score: eval.Estimated(1, 0),
		Nodes: 20,
	}

	s := pv.String()
	assert.Contains(t, s, "depth=1")
	assert.Contains(t, s, "e2e4")
	assert.Contains(t, s, "nodes=20")
}

func TestOptionsStringReflectsSetFields(t *testing.T) {
	bare := search.Options{}
	assert.Equal(t, "[]", bare.String())

	withDepth := search.Options{DepthLimit: lang.Some(uint(6)), ParallelDepth: 2}
	s := withDepth.String()
	assert.Contains(t, s, "depth=6")
	assert.Contains(t, s, "parallel=2")
}
