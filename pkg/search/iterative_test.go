package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/eval"
	"github.com/rook960/engine/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeDeepeningRespectsDepthLimit(t *testing.T) {
	root := search.NewNode(board.FromStartingPosition())
	h, out := search.Iterative{}.Launch(context.Background(), root, eval.Mobility{}, search.Options{
		DepthLimit: lang.Some(uint(2)),
	})

	var last search.PV
	for pv := range out {
		last = pv
		assert.LessOrEqual(t, pv.Depth, 2)
	}
	assert.Equal(t, 2, last.Depth)

	// Halt after exhaustion must be idempotent and return the same PV.
	again := h.Halt()
	assert.Equal(t, last.Depth, again.Depth)
}

func TestIterativeDeepeningHaltStopsMidSearch(t *testing.T) {
	root := search.NewNode(board.FromStartingPosition())
	h, out := search.Iterative{}.Launch(context.Background(), root, eval.Mobility{}, search.Options{})

	// Let at least one shallow iteration complete before halting.
	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("search produced no PV in time")
	}

	pv := h.Halt()
	require.GreaterOrEqual(t, pv.Depth, 1)

	// The channel must close after Halt.
	_, ok := <-out
	for ok {
		_, ok = <-out
	}
}

func TestIterativeDeepeningTerminalRootReturnsImmediately(t *testing.T) {
	p, err := board.FromHashable([]board.Placement{
		{Square: mustSquare(t, "a8"), Color: board.Black, Kind: board.King},
		{Square: mustSquare(t, "c7"), Color: board.White, Kind: board.King},
		{Square: mustSquare(t, "b6"), Color: board.White, Kind: board.Queen},
	}, board.Black, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	root := search.NewNode(p)
	_, out := search.Iterative{}.Launch(context.Background(), root, eval.Mobility{}, search.Options{})

	var got bool
	for range out {
		got = true
	}
	assert.False(t, got, "a stalemated root has no move and should close the channel without emitting a PV")
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquare(s)
	require.NoError(t, err)
	return sq
}
