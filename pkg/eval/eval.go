package eval

import "github.com/rook960/engine/pkg/board"

// Evaluator is a static position evaluator.
type Evaluator interface {
	Evaluate(pos *board.Position) Score
}

// Mobility is the mobility- and king-attack-based evaluator described for
// this engine: for each color, every pseudo-legal move counts toward that
// color's square control, and a move that lands safely and also presses on
// the opposing king counts toward king safety. The final score is White's
// pair minus Black's, compared lexicographically with king safety first.
type Mobility struct{}

// Evaluate scores pos from White's perspective. Terminal positions are
// scored outside this function, by board.EndStateOf and Score's own
// ordering; Evaluate only ever runs at a non-terminal leaf.
func (Mobility) Evaluate(pos *board.Position) Score {
	white := mobilityOf(pos, board.White)
	black := mobilityOf(pos, board.Black)
	return Estimated(white.kingSafety-black.kingSafety, white.squareControl-black.squareControl)
}

type mobilityCount struct {
	kingSafety    int
	squareControl int
}

// mobilityOf counts c's pseudo-legal moves as if c were to move, regardless
// of whose turn it actually is in pos.
func mobilityOf(pos *board.Position, c board.Color) mobilityCount {
	opponent := c.Opponent()
	kingSq := pos.KingSquare(opponent)

	var count mobilityCount
	for _, m := range board.PseudoLegalMovesFor(pos, c) {
		count.squareControl++

		if pos.IsAttacked(m.To, opponent) {
			continue
		}
		next := pos.ApplyMove(m)
		if attacksKingRegion(next, m.Mover, kingSq) {
			count.kingSafety++
		}
	}
	return count
}

// attacksKingRegion reports whether the piece at idx attacks the king's
// square or any square on one of the eight rays radiating from it.
func attacksKingRegion(pos *board.Position, idx board.PieceIndex, kingSq board.Square) bool {
	if pos.AttacksSquare(idx, kingSq) {
		return true
	}
	for _, dir := range board.KingDirections {
		for _, sq := range board.LineExclusive(kingSq, dir) {
			if pos.AttacksSquare(idx, sq) {
				return true
			}
		}
	}
	return false
}
