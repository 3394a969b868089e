package board

// buildMove assembles a Move from the position it is generated against,
// deriving the post-move castling rights from whatever the mover and (if
// any) the captured piece imply.
func buildMove(p *Position, mover PieceIndex, from, to Square, captured PieceIndex, rook *SubMove, promotion PieceKind, enPassantTarget Square) Move {
	color := mover.Color()
	kind := p.KindOf(mover)
	rights := p.castling

	if kind == King {
		rights = rights.Clear(color)
	}
	if kind == Rook && from.Rank() == HomeRank(color) {
		rights = rights.Remove(color, from.File())
	}
	if captured != NoPieceIndex {
		capturedPiece := ColoredPiece{Color: captured.Color(), Kind: p.KindOf(captured)}
		rights = rights.RemoveForRookCapture(capturedPiece, p.squareOf(captured))
	}

	return Move{
		Mover:           mover,
		From:            from,
		To:              to,
		Captured:        captured,
		CastlingRook:    rook,
		Promotion:       promotion,
		EnPassantTarget: enPassantTarget,
		CastlingRights:  rights,
	}
}

func appendPawnMoves(out []Move, p *Position, mover PieceIndex, from, to Square, captured PieceIndex) []Move {
	color := mover.Color()
	if to.Rank() == PawnPromotionRank(color) {
		for _, promo := range PromotionChoices {
			out = append(out, buildMove(p, mover, from, to, captured, nil, promo, NoSquare))
		}
		return out
	}
	return append(out, buildMove(p, mover, from, to, captured, nil, NoPiece, NoSquare))
}

func generatePawnMoves(p *Position, idx PieceIndex, out []Move) []Move {
	color := idx.Color()
	from := p.squareOf(idx)

	if mid, ok := from.Add(PawnSingleMove(color)); ok {
		if _, occ := p.PieceAt(mid); !occ {
			out = appendPawnMoves(out, p, idx, from, mid, NoPieceIndex)
			if from.Rank() == PawnHomeRank(color) {
				if to2, ok2 := mid.Add(PawnSingleMove(color)); ok2 {
					if _, occ2 := p.PieceAt(to2); !occ2 {
						// An en-passant target is only recorded when an
						// enemy pawn could actually capture on it.
						ep := NoSquare
						if enemyPawnCanCapture(p, mid, color) {
							ep = mid
						}
						out = append(out, buildMove(p, idx, from, to2, NoPieceIndex, nil, NoPiece, ep))
					}
				}
			}
		}
	}

	for _, off := range PawnAttacks(color) {
		to, ok := from.Add(off)
		if !ok {
			continue
		}
		if target, occ := p.PieceAt(to); occ {
			if target.Color != color {
				captured, _ := p.IndexAt(to)
				out = appendPawnMoves(out, p, idx, from, to, captured)
			}
			continue
		}
		if to == p.EnPassant() {
			capSq, ok := to.Add(PawnSingleMove(color.Opponent()))
			if !ok {
				continue
			}
			captured, ok := p.IndexAt(capSq)
			if !ok {
				continue
			}
			out = append(out, buildMove(p, idx, from, to, captured, nil, NoPiece, NoSquare))
		}
	}
	return out
}

// enemyPawnCanCapture reports whether a pawn of moverColor's opponent
// stands on a square from which it could capture onto target: one of
// moverColor's own attack offsets away, since the capturer sits mirrored
// across the target from the mover's point of view.
func enemyPawnCanCapture(p *Position, target Square, moverColor Color) bool {
	for _, off := range PawnAttacks(moverColor) {
		sq, ok := target.Add(off)
		if !ok {
			continue
		}
		if piece, occ := p.PieceAt(sq); occ && piece.Color != moverColor && piece.Kind == Pawn {
			return true
		}
	}
	return false
}

func generateStepMoves(p *Position, idx PieceIndex, offsets []Vector, out []Move) []Move {
	color := idx.Color()
	from := p.squareOf(idx)
	for _, off := range offsets {
		to, ok := from.Add(off)
		if !ok {
			continue
		}
		target, occ := p.PieceAt(to)
		if occ {
			if target.Color == color {
				continue
			}
			captured, _ := p.IndexAt(to)
			out = append(out, buildMove(p, idx, from, to, captured, nil, NoPiece, NoSquare))
			continue
		}
		out = append(out, buildMove(p, idx, from, to, NoPieceIndex, nil, NoPiece, NoSquare))
	}
	return out
}

func generateSliderMoves(p *Position, idx PieceIndex, dirs []Vector, out []Move) []Move {
	color := idx.Color()
	from := p.squareOf(idx)
	for _, dir := range dirs {
		for _, to := range LineExclusive(from, dir) {
			target, occ := p.PieceAt(to)
			if occ {
				if target.Color != color {
					captured, _ := p.IndexAt(to)
					out = append(out, buildMove(p, idx, from, to, captured, nil, NoPiece, NoSquare))
				}
				break
			}
			out = append(out, buildMove(p, idx, from, to, NoPieceIndex, nil, NoPiece, NoSquare))
		}
	}
	return out
}

func minFile(a, b File) File {
	if a < b {
		return a
	}
	return b
}

func maxFile(a, b File) File {
	if a > b {
		return a
	}
	return b
}

// castlingPathClear reports whether every square the king or rook crosses
// is empty, other than the king and rook's own starting squares (which
// Chess960 allows each to cross, or even start on what becomes the other's
// destination).
func (p *Position) castlingPathClear(kingFrom, kingTo, rookFrom, rookTo Square, kingIdx, rookIdx PieceIndex) bool {
	blocked := func(sq Square) bool {
		idx, ok := p.IndexAt(sq)
		return ok && idx != kingIdx && idx != rookIdx
	}
	rank := kingFrom.Rank()
	for f := minFile(kingFrom.File(), kingTo.File()); f <= maxFile(kingFrom.File(), kingTo.File()); f++ {
		if blocked(NewSquare(f, rank)) {
			return false
		}
	}
	for f := minFile(rookFrom.File(), rookTo.File()); f <= maxFile(rookFrom.File(), rookTo.File()); f++ {
		if blocked(NewSquare(f, rank)) {
			return false
		}
	}
	return true
}

// castlingPathAttacked reports whether any square the king crosses,
// including its start and destination, is attacked.
func (p *Position) castlingPathAttacked(kingFrom, kingTo Square, by Color) bool {
	rank := kingFrom.Rank()
	for f := minFile(kingFrom.File(), kingTo.File()); f <= maxFile(kingFrom.File(), kingTo.File()); f++ {
		if p.IsAttacked(NewSquare(f, rank), by) {
			return true
		}
	}
	return false
}

func generateCastlingMoves(p *Position, idx PieceIndex, out []Move) []Move {
	color := idx.Color()
	if p.IsCheck(color) {
		return out
	}
	home := HomeRank(color)
	kingFrom := p.squareOf(idx)
	opponent := color.Opponent()

	for _, file := range p.castling.All(color) {
		rookFrom := NewSquare(file, home)
		rookIdx, ok := p.IndexAt(rookFrom)
		if !ok {
			continue
		}

		var kingTo, rookTo Square
		if file > kingFrom.File() {
			kingTo, rookTo = NewSquare(FileG, home), NewSquare(FileF, home)
		} else {
			kingTo, rookTo = NewSquare(FileC, home), NewSquare(FileD, home)
		}

		if !p.castlingPathClear(kingFrom, kingTo, rookFrom, rookTo, idx, rookIdx) {
			continue
		}
		if p.castlingPathAttacked(kingFrom, kingTo, opponent) {
			continue
		}

		out = append(out, Move{
			Mover:           idx,
			From:            kingFrom,
			To:              kingTo,
			Captured:        NoPieceIndex,
			CastlingRook:    &SubMove{Piece: rookIdx, From: rookFrom, To: rookTo},
			Promotion:       NoPiece,
			EnPassantTarget: NoSquare,
			CastlingRights:  p.castling.Clear(color),
		})
	}
	return out
}

// pseudoLegalMoves generates every move that obeys piece movement rules,
// without checking whether it leaves the mover's own king in check.
func pseudoLegalMoves(p *Position) []Move {
	var out []Move
	for _, idx := range p.Pieces(p.turn) {
		switch p.KindOf(idx) {
		case Pawn:
			out = generatePawnMoves(p, idx, out)
		case Knight:
			out = generateStepMoves(p, idx, KnightOffsets[:], out)
		case Bishop:
			out = generateSliderMoves(p, idx, BishopDirections[:], out)
		case Rook:
			out = generateSliderMoves(p, idx, RookDirections[:], out)
		case Queen:
			out = generateSliderMoves(p, idx, KingDirections[:], out)
		case King:
			out = generateStepMoves(p, idx, KingDirections[:], out)
			out = generateCastlingMoves(p, idx, out)
		}
	}
	return out
}

// PseudoLegalMovesFor returns the pseudo-legal moves available to c in p,
// regardless of whose turn it actually is. The evaluator uses this to score
// both sides' mobility from a single position without constructing a second
// Position per side.
func PseudoLegalMovesFor(p *Position, c Color) []Move {
	if c == p.turn {
		return pseudoLegalMoves(p)
	}
	forced := p.Clone()
	forced.turn = c
	return pseudoLegalMoves(forced)
}

// GenerateLegalMoves returns every move legal in p: pseudo-legal moves
// filtered down to those that don't leave the mover's own king attacked
// afterward. This folds pins, discovered check, double check, and the
// en-passant discovered-pin case into a single rule, at the cost of
// speculatively applying every candidate; castling's own through-check and
// into-check restrictions are enforced separately during generation, since
// they constrain squares the king crosses, not just where it lands.
func GenerateLegalMoves(p *Position) []Move {
	color := p.turn
	candidates := pseudoLegalMoves(p)
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if next := p.ApplyMove(m); !next.IsCheck(color) {
			legal = append(legal, m)
		}
	}
	return legal
}
