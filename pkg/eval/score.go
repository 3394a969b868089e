// Package eval contains static position evaluation.
package eval

import (
	"fmt"

	"github.com/rook960/engine/pkg/board"
)

// tier orders the coarse categories a Score can fall into: a won position
// for Black is the lowest, a won position for White the highest, and every
// draw or estimated position sits in between, ordered relative to each
// other by their (king safety, square control) pair.
type tier uint8

const (
	tierWinBlack tier = iota
	tierMiddle        // Draw and Estimated share this tier
	tierWinWhite
)

// Score is a centipawn-scale estimate symmetric about zero from White's
// perspective, or one of the two decisive terminal outcomes. It orders
// total: Win(White) > any estimate > Win(Black), with Draw comparing as
// the zero estimate (0, 0) against estimates and equal to itself.
type Score struct {
	win           bool
	winner        board.Color
	draw          bool
	kingSafety    int
	squareControl int
}

// Estimated returns the heuristic score (kingSafety, squareControl), White
// minus Black, as computed by Evaluate.
func Estimated(kingSafety, squareControl int) Score {
	return Score{kingSafety: kingSafety, squareControl: squareControl}
}

// DrawScore is the drawn-game terminal score. It compares as the zero
// estimate (0, 0) against estimates and equal to itself.
var DrawScore = Score{draw: true}

// Win returns the decisive terminal score for the given winner.
func Win(winner board.Color) Score {
	return Score{win: true, winner: winner}
}

// NegInf and Inf bound every possible Score; they seed alpha-beta search
// before any child has been evaluated.
var (
	NegInf = Win(board.Black)
	Inf    = Win(board.White)
)

// FromEndState converts a terminal board.EndState into its Score.
func FromEndState(e board.EndState) Score {
	if e.Outcome == board.Win {
		return Win(e.Winner)
	}
	return DrawScore
}

func (s Score) tier() tier {
	switch {
	case s.win && s.winner == board.White:
		return tierWinWhite
	case s.win && s.winner == board.Black:
		return tierWinBlack
	default:
		return tierMiddle
	}
}

func (s Score) pair() (int, int) {
	if s.draw || s.win {
		return 0, 0
	}
	return s.kingSafety, s.squareControl
}

// Compare returns -1, 0, or 1 as a orders before, the same as, or after b.
func Compare(a, b Score) int {
	if ta, tb := a.tier(), b.tier(); ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}
	if a.tier() != tierMiddle {
		return 0 // both Win(White), or both Win(Black)
	}

	ak, as := a.pair()
	bk, bs := b.pair()
	if ak != bk {
		if ak < bk {
			return -1
		}
		return 1
	}
	if as != bs {
		if as < bs {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether s orders strictly before o.
func (s Score) Less(o Score) bool {
	return Compare(s, o) < 0
}

// IsWin reports whether s is a decisive terminal score, and for whom.
func (s Score) IsWin() (board.Color, bool) {
	return s.winner, s.win
}

// IsDraw reports whether s is the drawn-game terminal score.
func (s Score) IsDraw() bool {
	return s.draw
}

// Heuristic returns the (kingSafety, squareControl) pair for a
// non-terminal estimate, and false for a win or a draw.
func (s Score) Heuristic() (kingSafety, squareControl int, ok bool) {
	if s.win || s.draw {
		return 0, 0, false
	}
	return s.kingSafety, s.squareControl, true
}

func (s Score) String() string {
	switch {
	case s.win:
		return fmt.Sprintf("%v wins", s.winner)
	case s.draw:
		return "draw"
	default:
		return fmt.Sprintf("{king_safety=%v, square_control=%v}", s.kingSafety, s.squareControl)
	}
}
