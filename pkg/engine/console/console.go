// Package console implements an interactive terminal driver for debugging
// and manual play: an 8x8 ANSI board rendering plus a line-oriented command
// set (flip the view, restart, play a move, ask a bot to play, ...).
package console

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/board/fen"
	"github.com/rook960/engine/pkg/engine"
	"github.com/rook960/engine/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// ProtocolName is the first input line that selects this driver.
const ProtocolName = "console"

const (
	colorWhiteSquare = "\x1b[30;107m"
	colorBlackSquare = "\x1b[30;47m"
	colorHighlight   = "\x1b[30;103m"
	colorReset       = "\x1b[0m"
)

// Driver is the interactive console protocol: it reads one command per
// line from in and writes rendered board frames and responses to the
// returned channel.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	view        board.Color
	highlighted []board.Square
	lastMove    string
	helpShown   bool
}

// NewDriver starts the console protocol against e, consuming in until it
// closes or the driver is closed.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
		view:        board.White,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.printFrame(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if quit := d.handle(ctx, strings.TrimSpace(line)); quit {
				return
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// handle executes a single command line and reports whether the driver
// should now quit.
func (d *Driver) handle(ctx context.Context, line string) bool {
	switch {
	case line == "help":
		d.printHelp()
		return false

	case line == "flip":
		d.view = d.view.Opponent()
		d.printFrame(ctx)
		return false

	case line == "restart":
		_ = d.e.Reset(ctx, fen.Initial)
		d.highlighted, d.lastMove = nil, ""
		d.printFrame(ctx)
		return false

	case line == "start chess960":
		id := rand.Intn(960)
		if err := d.e.ResetChess960(ctx, id); err != nil {
			d.out <- fmt.Sprintf("Error: %v", err)
			return false
		}
		d.highlighted, d.lastMove = nil, ""
		d.printFrame(ctx)
		return false

	case line == "quit":
		return true

	case line == "fen":
		d.out <- d.e.FEN()
		return false

	case strings.HasPrefix(line, "import "):
		position := strings.TrimSpace(strings.TrimPrefix(line, "import "))
		if err := d.e.Reset(ctx, position); err != nil {
			d.out <- fmt.Sprintf("Error: %v", err)
			return false
		}
		d.highlighted, d.lastMove = nil, ""
		d.printFrame(ctx)
		return false

	case strings.HasPrefix(line, "bot "):
		depth, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "bot ")))
		if err != nil || depth <= 0 {
			d.out <- fmt.Sprintf("Error: invalid depth: %v", line)
			return false
		}
		d.playBot(ctx, uint(depth))
		return false

	case len(line) == 2:
		if sq, err := board.ParseSquare(line); err == nil {
			d.highlightMoves(ctx, sq)
			return false
		}
		d.out <- fmt.Sprintf("Error: no piece found on %v", line)
		return false

	case line == "":
		return false

	default:
		m, err := board.ParseMove(d.e.Position(), line)
		if err != nil {
			d.out <- fmt.Sprintf("Error: %v is an invalid move", line)
			return false
		}
		d.lastMove = board.DescribeMove(d.e.Position(), m)
		d.e.PlayMove(ctx, m)
		d.highlighted = []board.Square{m.From, m.To}
		d.printFrame(ctx)
		return false
	}
}

func (d *Driver) highlightMoves(ctx context.Context, sq board.Square) {
	piece, ok := d.e.Position().PieceAt(sq)
	if !ok {
		d.out <- fmt.Sprintf("Error: no piece found on %v", sq)
		return
	}
	if piece.Color != d.e.Position().Turn() {
		d.out <- fmt.Sprintf("Error: It is %v's turn", colorName(d.e.Position().Turn()))
		return
	}

	moves, _, _ := d.e.LegalMoves()
	d.highlighted = d.highlighted[:0]
	for _, m := range moves {
		if m.From == sq {
			d.highlighted = append(d.highlighted, m.To)
		}
	}
	d.printFrame(ctx)
}

func (d *Driver) playBot(ctx context.Context, depth uint) {
	out, err := d.e.Analyze(ctx, search.Options{DepthLimit: lang.Some(depth)})
	if err != nil {
		d.out <- fmt.Sprintf("Error: %v", err)
		return
	}

	var last search.PV
	for pv := range out {
		last = pv
	}
	if _, err := d.e.Halt(ctx); err != nil {
		// already drained to completion; nothing left to halt.
		_ = err
	}
	if len(last.Moves) == 0 {
		d.out <- "Error: no move found"
		return
	}

	m := last.Moves[0]
	d.lastMove = board.DescribeMove(d.e.Position(), m)
	d.e.PlayMove(ctx, m)
	d.highlighted = []board.Square{m.From, m.To}
	d.printFrame(ctx)
}

func (d *Driver) printHelp() {
	lines := []string{
		"flip           - flip the board",
		"restart        - reset to starting position",
		"start chess960 - start a new chess960 game",
		"quit           - quit the game",
		"import <fen>   - import a position",
		"fen            - export the position as fen",
		"e2             - view valid moves",
		"e2e4           - play the move",
		"e7e8q          - move and promote",
		"e1g1 (or e1h1) - perform castling",
		"bot <depth>    - let a bot play",
	}
	for _, l := range lines {
		d.out <- l
	}
}

// printFrame renders the board plus an info pane: the side to move, or the
// terminal outcome once the game has ended.
func (d *Driver) printFrame(ctx context.Context) {
	info := d.infoLines(ctx)
	for _, line := range d.render(info) {
		d.out <- line
	}
}

func (d *Driver) infoLines(ctx context.Context) []string {
	var info []string
	if end, ok := board.EndStateOf(d.e.Position()); ok {
		info = append(info, end.String())
	} else {
		info = append(info, fmt.Sprintf("%v plays", colorName(d.e.Position().Turn())))
	}
	if d.lastMove != "" {
		info = append(info, fmt.Sprintf("last move: %v", d.lastMove))
	}
	if !d.helpShown {
		info = append(info, "type `help` for instructions")
		d.helpShown = true
	}
	info = append(info, "", fmt.Sprintf("fen: %v", d.e.FEN()))
	logw.Debugf(ctx, "frame: %v", info)
	return info
}

// render lays out the board as 8 ranks of colored two-column squares, with
// the given info lines printed alongside, from d.view's perspective.
func (d *Driver) render(info []string) []string {
	var out []string
	pos := d.e.Position()

	for row := 0; row < 8; row++ {
		rank := board.Rank(row)
		if d.view == board.Black {
			rank = board.Rank(7 - row)
		}

		var sb strings.Builder
		for col := 0; col < 8; col++ {
			file := board.File(col)
			if d.view == board.Black {
				file = board.File(7 - col)
			}
			sq := board.NewSquare(file, rank)

			color := colorWhiteSquare
			if d.isHighlighted(sq) {
				color = colorHighlight
			} else if sq.Color() == board.Black {
				color = colorBlackSquare
			}

			figurine := ' '
			if p, ok := pos.PieceAt(sq); ok {
				figurine = p.Figurine()
			}
			sb.WriteString(fmt.Sprintf("%v%c %v", color, figurine, colorReset))
		}
		sb.WriteString(rank.String())

		line := sb.String()
		if len(info) > 0 {
			line += "  " + info[0]
			info = info[1:]
		}
		out = append(out, line)
	}

	files := "a b c d e f g h"
	if d.view == board.Black {
		files = "h g f e d c b a"
	}
	last := files
	if len(info) > 0 {
		last += "    " + info[0]
		info = info[1:]
	}
	out = append(out, last)
	for _, line := range info {
		out = append(out, strings.Repeat(" ", 19)+line)
	}
	out = append(out, "")
	return out
}

// colorName is the long form used for console display; Color's own String
// is the single-letter FEN form.
func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func (d *Driver) isHighlighted(sq board.Square) bool {
	for _, h := range d.highlighted {
		if h == sq {
			return true
		}
	}
	return false
}
