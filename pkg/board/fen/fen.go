// Package fen contains utilities for reading and writing positions in
// Forsyth-Edwards Notation, standard and Shredder (Chess960).
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rook960/engine/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position plus the two move counters FEN
// carries that Position itself has no field for: the halfmove clock (plies
// since the last pawn move or capture) and the fullmove number.
func Decode(s string) (*board.Position, int, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, 0, 0, fmt.Errorf("fen: expected 6 fields, got %d: %q", len(parts), s)
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, 0, 0, err
	}

	turn, err := board.ParseColor(parts[1])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("fen: %w", err)
	}

	castling, err := board.ParseCastlingRights(parts[2])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("fen: %w", err)
	}

	ep := board.NoSquare
	if parts[3] != "-" {
		ep, err = board.ParseSquare(parts[3])
		if err != nil {
			return nil, 0, 0, fmt.Errorf("fen: invalid en passant target: %w", err)
		}
		// Only rank-3 and rank-6 squares are reachable by a double step; a
		// plausible but stale target is cleared during validation instead.
		if r := ep.Rank(); r != board.Rank3 && r != board.Rank6 {
			return nil, 0, 0, fmt.Errorf("fen: %w", board.ErrInvalidEnPassantTarget)
		}
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, fmt.Errorf("fen: invalid halfmove clock: %q", parts[4])
	}
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, fmt.Errorf("fen: invalid fullmove number: %q", parts[5])
	}

	pos, err := board.FromHashable(placements, turn, castling, ep)
	if err != nil {
		return nil, 0, 0, err
	}
	return pos, halfmove, fullmove, nil
}

func decodePlacement(field string) ([]board.Placement, error) {
	var placements []board.Placement

	rows := strings.Split(field, "/")
	if len(rows) != int(board.NumRanks) {
		return nil, fmt.Errorf("fen: expected %d ranks, got %d: %q", board.NumRanks, len(rows), field)
	}
	for r, row := range rows {
		f := 0
		for _, c := range row {
			switch {
			case unicode.IsDigit(c):
				f += int(c - '0')
			default:
				color, kind, err := parsePiece(byte(c))
				if err != nil {
					return nil, fmt.Errorf("fen: %w", err)
				}
				if f >= int(board.NumFiles) {
					return nil, fmt.Errorf("fen: rank %q overflows the board", row)
				}
				sq := board.NewSquare(board.File(f), board.Rank(r))
				placements = append(placements, board.Placement{Square: sq, Color: color, Kind: kind})
				f++
			}
		}
		if f != int(board.NumFiles) {
			return nil, fmt.Errorf("fen: rank %q does not cover 8 files", row)
		}
	}
	return placements, nil
}

// Encode renders pos (plus the halfmove clock and fullmove number) as a FEN
// record. chess960 selects the castling-field emission mode: Shredder
// (always naming rook files) when true, standard K/Q/k/q shorthand
// (falling back to Shredder letters for non-standard rook files) when
// false.
func Encode(pos *board.Position, chess960 bool, halfmove, fullmove int) string {
	var sb strings.Builder
	for r := board.Rank(0); r < board.NumRanks; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		blanks := 0
		for f := board.File(0); f < board.NumFiles; f++ {
			piece, ok := pos.PieceAt(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
	}

	castling := pos.Castling().String()
	if !chess960 {
		castling = pos.Castling().StandardString()
	}

	ep := "-"
	if pos.EnPassant().IsValid() {
		ep = pos.EnPassant().String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), pos.Turn(), castling, ep, halfmove, fullmove)
}

func parsePiece(c byte) (board.Color, board.PieceKind, error) {
	color := board.White
	if c >= 'a' && c <= 'z' {
		color = board.Black
	}
	kind, err := board.ParsePieceKind(c)
	if err != nil {
		return 0, 0, err
	}
	return color, kind, nil
}
