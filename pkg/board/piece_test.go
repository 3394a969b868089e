package board_test

import (
	"testing"

	"github.com/rook960/engine/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePieceKind(t *testing.T) {
	tests := []struct {
		c    byte
		want board.PieceKind
	}{
		{'p', board.Pawn}, {'P', board.Pawn},
		{'n', board.Knight}, {'N', board.Knight},
		{'b', board.Bishop}, {'B', board.Bishop},
		{'r', board.Rook}, {'R', board.Rook},
		{'q', board.Queen}, {'Q', board.Queen},
		{'k', board.King}, {'K', board.King},
	}
	for _, tt := range tests {
		k, err := board.ParsePieceKind(tt.c)
		require.NoError(t, err)
		assert.Equal(t, tt.want, k)
	}

	_, err := board.ParsePieceKind('x')
	assert.Error(t, err)
}

func TestColoredPieceString(t *testing.T) {
	assert.Equal(t, "Q", board.ColoredPiece{Color: board.White, Kind: board.Queen}.String())
	assert.Equal(t, "q", board.ColoredPiece{Color: board.Black, Kind: board.Queen}.String())
}

// TestChess960Coverage checks, for every Chess960 id, that the generated
// back rank is a valid arrangement: bishops on opposite-color files, the
// king between the two rooks, and every piece kind present exactly as many
// times as the standard back rank has it.
func TestChess960Coverage(t *testing.T) {
	for id := 0; id < 960; id++ {
		rank, err := board.Chess960BackRank(id)
		require.NoError(t, err)

		var bishops, rooks []int
		var king, queen, knights int
		for f, kind := range rank {
			switch kind {
			case board.Bishop:
				bishops = append(bishops, f)
			case board.Rook:
				rooks = append(rooks, f)
			case board.King:
				king = f
			case board.Queen:
				queen++
			case board.Knight:
				knights++
			}
		}

		require.Len(t, bishops, 2, "id=%d", id)
		assert.NotEqual(t, bishops[0]%2, bishops[1]%2, "bishops must sit on opposite-color files, id=%d", id)

		require.Len(t, rooks, 2, "id=%d", id)
		assert.True(t, rooks[0] < king && king < rooks[1], "king must sit between the rooks, id=%d", id)

		assert.Equal(t, 1, queen, "id=%d", id)
		assert.Equal(t, 2, knights, "id=%d", id)
	}
}

func TestChess960BackRankInvalidID(t *testing.T) {
	_, err := board.Chess960BackRank(-1)
	assert.Error(t, err)

	_, err = board.Chess960BackRank(960)
	assert.Error(t, err)
}

func TestChess960BackRankStandardIsAmongThem(t *testing.T) {
	// id 518 is the conventional "standard" Chess960 id (RNBQKBNR).
	rank, err := board.Chess960BackRank(518)
	require.NoError(t, err)
	assert.Equal(t, board.StartingBackRank, rank)
}
