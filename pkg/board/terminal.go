package board

// Outcome distinguishes a decisive terminal result from a draw.
type Outcome uint8

const (
	Win Outcome = iota
	Draw
)

// EndState is a terminal result: either a win for Winner, or a draw.
type EndState struct {
	Outcome Outcome
	Winner  Color // meaningful only when Outcome == Win
}

func (e EndState) String() string {
	if e.Outcome == Win {
		return e.Winner.String() + " wins"
	}
	return "draw"
}

type pieceLeftKind uint8

const (
	pieceLeftNone pieceLeftKind = iota
	pieceLeftKnight
	pieceLeftBishop
)

type pieceLeft struct {
	kind        pieceLeftKind
	bishopColor Color
}

// oneSideIsDead classifies a color's non-king material for the dead
// position rule. ok is false when the side has material that could still
// force mate (a rook, a queen, a pawn, more than one knight, a knight
// alongside a bishop, or bishops on both square colors). When ok is true,
// lone reports whether the side has no material at all (a bare king) as
// opposed to exactly one knight or any number of same-square-color
// bishops.
func oneSideIsDead(p *Position, c Color) (lone, ok bool) {
	var left pieceLeft
	for _, idx := range p.Pieces(c) {
		if idx == kingIndexFor(c) {
			continue
		}
		switch p.KindOf(idx) {
		case Knight:
			if left.kind != pieceLeftNone {
				return false, false
			}
			left.kind = pieceLeftKnight
		case Bishop:
			sqColor := p.squareOf(idx).Color()
			switch left.kind {
			case pieceLeftNone:
				left = pieceLeft{kind: pieceLeftBishop, bishopColor: sqColor}
			case pieceLeftBishop:
				if left.bishopColor != sqColor {
					return false, false
				}
			default:
				return false, false
			}
		default:
			return false, false
		}
	}
	return left.kind == pieceLeftNone, true
}

// IsDeadPosition reports whether no sequence of legal moves from p could
// ever produce checkmate: bare king against bare king, lone minor, or any
// number of same-colored bishops, in either combination, but not two
// minors facing each other on both sides at once.
func IsDeadPosition(p *Position) bool {
	whiteLone, whiteOK := oneSideIsDead(p, White)
	if !whiteOK {
		return false
	}
	if whiteLone {
		_, blackOK := oneSideIsDead(p, Black)
		return blackOK
	}
	blackLone, blackOK := oneSideIsDead(p, Black)
	return blackOK && blackLone
}

// EndStateOf reports the terminal state of p, if any: Draw on a dead
// position, Win(opponent) on checkmate, Draw on stalemate, or (zero-value,
// false) when the game continues.
func EndStateOf(p *Position) (EndState, bool) {
	if IsDeadPosition(p) {
		return EndState{Outcome: Draw}, true
	}
	if len(GenerateLegalMoves(p)) > 0 {
		return EndState{}, false
	}
	if p.IsCheck(p.Turn()) {
		return EndState{Outcome: Win, Winner: p.Turn().Opponent()}, true
	}
	return EndState{Outcome: Draw}, true
}
