// Package uci contains a driver for using the engine under the Universal
// Chess Interface protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/board/fen"
	"github.com/rook960/engine/pkg/engine"
	"github.com/rook960/engine/pkg/engine/console"
	"github.com/rook960/engine/pkg/eval"
	"github.com/rook960/engine/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

// ProtocolName is the first input line that selects this driver.
const ProtocolName = "uci"

// Driver implements the UCI protocol subset over an engine.Engine.
type Driver struct {
	e *engine.Engine

	out chan<- string

	debug  atomic.Bool
	active atomic.Bool    // a "go" is outstanding
	ponder chan search.PV // intermediate search info, forwarded as "info"
	turn   board.Color    // side to move when the active search was launched

	lastPosition string // last "position" line, for incremental "moves" updates

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts the UCI protocol against e, consuming in until it closes
// or the driver is closed. Its first output lines identify the engine,
// list its options, and end with "uciok".
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Depth type spin default 0 min 0 max 64"
	d.out <- "option name ParallelDepth type spin default 0 min 0 max 8"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if quit := d.handle(ctx, line, in); quit {
				return
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printInfo(pv, d.turn)
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handle(ctx context.Context, line string, in <-chan string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "debug":
		if len(args) > 0 {
			d.debug.Store(args[0] == "on")
		}

	case "setoption":
		name, value := parseSetOption(args)
		switch name {
		case "Depth":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				d.e.SetDepth(uint(n))
			}
		case "ParallelDepth":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				d.e.SetParallelDepth(uint(n))
			}
		default:
			d.out <- fmt.Sprintf("info string unknown option %v", name)
		}

	case "register":
		// accepted and ignored.

	case "ucinewgame":
		d.ensureInactive(ctx)
		d.lastPosition = ""

	case "position":
		d.ensureInactive(ctx)
		d.handlePosition(ctx, line, args)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		if pv, ok := d.haltActive(ctx); ok {
			d.emitBestMove(pv)
		}

	case "ponderhit":
		// pondering is out of scope; accepted and ignored.

	case "repl":
		d.ensureInactive(ctx)
		d.runRepl(ctx, in)

	case "quit":
		d.ensureInactive(ctx)
		return true

	default:
		d.out <- fmt.Sprintf("info string unknown command %v", cmd)
	}
	return false
}

func parseSetOption(args []string) (name, value string) {
	var nameParts, valueParts []string
	mode := 0 // 0 before name, 1 in name, 2 in value
	for _, a := range args {
		switch a {
		case "name":
			mode = 1
		case "value":
			mode = 2
		default:
			switch mode {
			case 1:
				nameParts = append(nameParts, a)
			case 2:
				valueParts = append(valueParts, a)
			}
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) {
	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, m := range strings.Fields(moves) {
			if m == "moves" {
				continue
			}
			if err := d.e.Move(ctx, m); err != nil {
				d.out <- fmt.Sprintf("info string invalid move %v: %v", m, err)
				return
			}
		}
		d.lastPosition = line
		return
	}

	position := fen.Initial
	rest := args
	switch {
	case len(args) > 0 && args[0] == "startpos":
		rest = args[1:]
	case len(args) >= 7 && args[0] == "fen":
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	}

	if err := d.e.Reset(ctx, position); err != nil {
		d.out <- fmt.Sprintf("info string invalid position: %v", err)
		return
	}

	move := false
	for _, arg := range rest {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			d.out <- fmt.Sprintf("info string invalid move %v: %v", arg, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	var opt search.Options
	var tc search.TimeControl
	haveTC := false
	infinite := false
	var movetime time.Duration

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			i++
			if i >= len(args) {
				d.out <- "info string missing argument for " + args[i-1]
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				d.out <- "info string invalid argument for " + args[i-1]
				return
			}
			switch args[i-1] {
			case "depth":
				opt.DepthLimit = lang.Some(uint(n))
			case "wtime":
				tc.White, haveTC = time.Duration(n)*time.Millisecond, true
			case "btime":
				tc.Black, haveTC = time.Duration(n)*time.Millisecond, true
			case "movestogo":
				tc.Moves, haveTC = n, true
			case "movetime":
				movetime = time.Duration(n) * time.Millisecond
			case "winc", "binc", "nodes", "mate":
				// increments, node limits, and mate-search are accepted and
				// otherwise not applied by this search.
			}
		case "infinite":
			infinite = true
		case "ponder":
			// pondering is out of scope; treated as a normal "go".
		default:
			// searchmoves and anything else: not restricted.
		}
	}
	if haveTC && !infinite {
		opt.TimeControl = lang.Some(tc)
	}

	d.turn = d.e.Position().Turn()

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		d.out <- fmt.Sprintf("info string analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		if !infinite {
			if d.active.CAS(true, false) {
				d.emitBestMove(last)
			}
		}
	}()

	if movetime > 0 {
		time.AfterFunc(movetime, func() {
			_, _ = d.e.Halt(ctx)
		})
	}
}

func (d *Driver) runRepl(ctx context.Context, in <-chan string) {
	d.out <- "info string entering repl"
	sub, subOut := console.NewDriver(ctx, d.e, in)
	for line := range subOut {
		d.out <- line
	}
	<-sub.Closed()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if pv, ok := d.haltActive(ctx); ok {
		d.emitBestMove(pv)
	}
}

func (d *Driver) haltActive(ctx context.Context) (search.PV, bool) {
	if !d.active.CAS(true, false) {
		return search.PV{}, false
	}
	pv, err := d.e.Halt(ctx)
	if err != nil {
		return search.PV{}, false
	}
	return pv, true
}

// emitBestMove always formats moves in standard notation: the driver does
// not implement the UCI_Chess960 option, so castling is reported as
// king-from/king-to (e1g1) even in a game that started from a Chess960
// setup.
func (d *Driver) emitBestMove(pv search.PV) {
	if len(pv.Moves) == 0 {
		d.out <- "bestmove 0000"
		return
	}
	d.out <- printInfo(pv, d.turn)
	if len(pv.Moves) > 1 {
		d.out <- fmt.Sprintf("bestmove %v ponder %v", board.FormatMove(pv.Moves[0], false), board.FormatMove(pv.Moves[1], false))
		return
	}
	d.out <- fmt.Sprintf("bestmove %v", board.FormatMove(pv.Moves[0], false))
}

// printInfo renders a PV as an "info ..." line. Scores are reported from
// turn's perspective, as UCI requires: positive means turn is winning.
func printInfo(pv search.PV, turn board.Color) string {
	parts := []string{"info", fmt.Sprintf("depth %v", pv.Depth)}

	if winner, ok := pv.Score.IsWin(); ok {
		moves := (len(pv.Moves) + 1) / 2
		if moves == 0 {
			moves = 1
		}
		if winner != turn {
			moves = -moves
		}
		parts = append(parts, fmt.Sprintf("score mate %v", moves))
	} else {
		cp := centipawns(pv.Score)
		if turn == board.Black {
			cp = -cp
		}
		parts = append(parts, fmt.Sprintf("score cp %v", cp))
	}

	parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(float64(pv.Nodes)/pv.Time.Seconds())))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "multipv 1", "pv", formatMoves(pv.Moves))
	}
	return strings.Join(parts, " ")
}

// centipawns maps the evaluator's (kingSafety, squareControl) estimate onto
// a UCI centipawn value. The scaling is UCI-display-only; search itself
// compares eval.Score directly and never goes through this conversion.
func centipawns(s eval.Score) int {
	kingSafety, squareControl, ok := s.Heuristic()
	if !ok {
		return 0 // draw
	}
	return 20*kingSafety + 10*squareControl
}

func formatMoves(moves []board.Move) string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = board.FormatMove(m, false)
	}
	return strings.Join(out, " ")
}
