package board_test

import (
	"testing"

	"github.com/rook960/engine/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	v := board.Vector{DX: 1, DY: -2}
	assert.Equal(t, board.Vector{DX: -1, DY: 2}, v.Negate())
	assert.Equal(t, board.Vector{DX: 3, DY: -6}, v.Scale(3))
	assert.Equal(t, board.Vector{DX: 3, DY: -1}, v.Add(board.Vector{DX: 2, DY: 1}))

	assert.Equal(t, board.Vector{DX: 1, DY: -1}, board.Vector{DX: 3, DY: -3}.Unit())
	assert.Equal(t, board.Vector{DX: 0, DY: 1}, board.Vector{DX: 0, DY: 5}.Unit())
	assert.Equal(t, board.Vector{}, board.Vector{}.Unit())
}

func TestVectorPredicates(t *testing.T) {
	assert.True(t, board.Vector{DX: 1, DY: 2}.IsKnightMove())
	assert.True(t, board.Vector{DX: -2, DY: 1}.IsKnightMove())
	assert.False(t, board.Vector{DX: 1, DY: 1}.IsKnightMove())

	assert.True(t, board.Vector{DX: 1, DY: 1}.IsKingMove())
	assert.True(t, board.Vector{DX: 0, DY: -1}.IsKingMove())
	assert.False(t, board.Vector{}.IsKingMove())
	assert.False(t, board.Vector{DX: 2, DY: 0}.IsKingMove())

	// White moves toward rank 8, which is the low rank index.
	assert.True(t, board.Vector{DX: 1, DY: -1}.IsPawnAttack(board.White))
	assert.False(t, board.Vector{DX: 1, DY: 1}.IsPawnAttack(board.White))
	assert.True(t, board.Vector{DX: -1, DY: 1}.IsPawnAttack(board.Black))
}

func TestVectorIsAligned(t *testing.T) {
	assert.True(t, board.Vector{DX: 2, DY: 2}.IsAligned(board.Vector{DX: 1, DY: 1}))
	assert.True(t, board.Vector{DX: 1, DY: 2}.IsAligned(board.Vector{DX: 2, DY: 4}))

	// Collinear but opposite sense is not aligned.
	assert.False(t, board.Vector{DX: 2, DY: 2}.IsAligned(board.Vector{DX: -1, DY: -1}))
	assert.False(t, board.Vector{DX: 1, DY: 0}.IsAligned(board.Vector{DX: 0, DY: 1}))
	assert.False(t, board.Vector{}.IsAligned(board.Vector{DX: 1, DY: 1}))
}

func TestLineIterators(t *testing.T) {
	up := board.PawnSingleMove(board.White) // toward rank 8
	a1 := board.NewSquare(board.FileA, board.Rank1)
	a2 := board.NewSquare(board.FileA, board.Rank2)
	a4 := board.NewSquare(board.FileA, board.Rank4)

	assert.Len(t, board.LineExclusive(a1, up), 7)
	assert.Len(t, board.LineInclusive(a1, up), 8)
	assert.Equal(t, a1, board.LineInclusive(a1, up)[0])

	assert.Equal(t,
		[]board.Square{a1, a2, board.NewSquare(board.FileA, board.Rank3), a4},
		board.LineInclusiveInclusive(a1, a4, up))
	assert.Len(t, board.LineInclusiveExclusive(a1, a4, up), 3)
	assert.Len(t, board.LineExclusiveInclusive(a1, a4, up), 3)
	assert.Len(t, board.LineExclusiveExclusive(a1, a4, up), 2)

	// Exclusive/exclusive between adjacent squares is empty.
	assert.Empty(t, board.LineExclusiveExclusive(a1, a2, up))
}
