package board

import (
	"fmt"
	"strings"
)

// ParseMove parses long algebraic notation ("e2e4", "e7e8q") against the
// position's legal move set, in both the standard form (king moves to its
// own destination square on castling) and the Chess960/UCI-chess960 form
// (king "moves to" the castling rook's square).
func ParseMove(p *Position, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return Move{}, &parseError{what: "move", value: s}
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, &parseError{what: "move", value: s}
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, &parseError{what: "move", value: s}
	}
	promotion := NoPiece
	if len(s) == 5 {
		promotion, err = ParsePieceKind(s[4])
		if err != nil {
			return Move{}, &parseError{what: "move", value: s}
		}
	}

	for _, m := range GenerateLegalMoves(p) {
		if m.From != from || m.Promotion != promotion {
			continue
		}
		if m.To == to {
			return m, nil
		}
		// Chess960/UCI castling notation names the rook's square as the
		// king's destination instead of the king's own landing square.
		if m.IsCastle() && m.CastlingRook.From == to {
			return m, nil
		}
	}
	return Move{}, &parseError{what: "move", value: s}
}

// FormatMove renders m in long algebraic notation. In standard mode
// castling prints the king's own from/to squares; in Chess960 mode it
// prints king-from/rook-from, as UCI requires for Chess960 games.
func FormatMove(m Move, chess960 bool) string {
	to := m.To
	if chess960 && m.IsCastle() {
		to = m.CastlingRook.From
	}
	s := m.From.String() + to.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Lowercase())
	}
	return s
}

// DescribeMove returns a short human label for a move, without SAN
// disambiguation. p must be the position the move was generated from, not
// the position after it.
func DescribeMove(p *Position, m Move) string {
	piece := ColoredPiece{Color: m.Mover.Color(), Kind: p.KindOf(m.Mover)}
	switch {
	case m.IsCastle():
		if m.To.File() > m.From.File() {
			return "O-O"
		}
		return "O-O-O"
	case m.IsPromotion():
		return fmt.Sprintf("%s%s=%s", m.From, m.To, string(m.Promotion.Uppercase()))
	case m.IsCapture():
		return fmt.Sprintf("%sx%s", piece, m.To)
	default:
		return fmt.Sprintf("%s%s", piece, m.To)
	}
}
