package search

import (
	"fmt"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl is the remaining clock time for both sides, plus the number
// of moves left to the next time control (0 meaning the rest of the game).
type TimeControl struct {
	White, Black time.Duration
	Moves        int
}

// Limits returns a soft and a hard deadline for the side to move: after the
// soft deadline, no new iteration should start; the hard deadline is an
// absolute cutoff enforced by a timer.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remaining := t.White
	if c == board.Black {
		remaining = t.Black
	}

	movesToGo := time.Duration(40)
	if t.Moves > 0 {
		movesToGo = time.Duration(t.Moves) + 1
	}

	soft = remaining / (2 * movesToGo)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// enforceTimeControl starts a timer that halts h at the hard deadline, if a
// TimeControl is set. It returns the soft deadline, for the driver to stop
// starting new iterations once it has elapsed.
func enforceTimeControl(h Handle, tc lang.Optional[TimeControl], turn board.Color) (soft time.Duration, ok bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}
	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})
	return soft, true
}
