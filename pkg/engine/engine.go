// Package engine wires together a Position, the move generator, and the
// search package behind a single mutex-guarded façade used by both the
// interactive console and the UCI driver.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/board/fen"
	"github.com/rook960/engine/pkg/eval"
	"github.com/rook960/engine/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are the engine's default search options, overridable per search.
type Options struct {
	// Depth is the search depth limit. Zero means no limit.
	Depth uint
	// ParallelDepth is how many plies from the root run on a worker pool.
	ParallelDepth uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, parallel=%v}", o.Depth, o.ParallelDepth)
}

// Engine encapsulates game-playing logic: the current position, the game
// tree rooted at it, and the search launcher.
type Engine struct {
	name, author string

	launcher search.Launcher
	eval     eval.Evaluator
	opts     Options

	mu       sync.Mutex
	root     *search.Node
	chess960 bool
	halfmove int
	fullmove int
	active   search.Handle
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets the engine's default search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithEvaluator overrides the default Mobility evaluator.
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) { e.eval = ev }
}

// New creates an engine, reset to the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: search.Iterative{},
		eval:     eval.Mobility{},
	}
	for _, fn := range opts {
		fn(e)
	}

	if err := e.Reset(ctx, fen.Initial); err != nil {
		panic("engine: standard starting position rejected: " + err.Error())
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

func (e *Engine) SetParallelDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.ParallelDepth = depth
}

// Position returns a snapshot of the current position.
func (e *Engine) Position() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root.Position
}

// FEN returns the current position in FEN, using Shredder castling-field
// notation iff the game started from a Chess960 setup.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.root.Position, e.chess960, e.halfmove, e.fullmove)
}

// Reset resets the engine to the position described by the given FEN.
func (e *Engine) Reset(ctx context.Context, position string) error {
	pos, halfmove, fullmove, err := fen.Decode(position)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchLocked(ctx)
	e.root = search.NewNode(pos)
	e.chess960 = false
	e.halfmove = halfmove
	e.fullmove = fullmove

	logw.Infof(ctx, "Reset to %v", position)
	return nil
}

// ResetChess960 resets the engine to the Chess960 starting position for the
// given shuffle id (0..959).
func (e *Engine) ResetChess960(ctx context.Context, id int) error {
	pos, err := board.FromChess960(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchLocked(ctx)
	e.root = search.NewNode(pos)
	e.chess960 = true
	e.halfmove = 0
	e.fullmove = 1

	logw.Infof(ctx, "Reset to Chess960 id=%v", id)
	return nil
}

// Move plays the given long-algebraic move against the current position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := board.ParseMove(e.root.Position, move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchLocked(ctx)
	e.applyLocked(m)

	logw.Infof(ctx, "Move %v", move)
	return nil
}

// PlayMove plays an already-generated legal move, e.g. the engine's own
// search result.
func (e *Engine) PlayMove(ctx context.Context, m board.Move) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchLocked(ctx)
	e.applyLocked(m)
}

func (e *Engine) applyLocked(m board.Move) {
	if m.IsCapture() || e.root.Position.KindOf(m.Mover) == board.Pawn {
		e.halfmove = 0
	} else {
		e.halfmove++
	}
	if e.root.Position.Turn() == board.Black {
		e.fullmove++
	}
	e.root = e.root.Child(m)
}

// LegalMoves returns the legal moves of the current position, or the
// terminal state if none exist.
func (e *Engine) LegalMoves() ([]board.Move, board.EndState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if end, ok := board.EndStateOf(e.root.Position); ok {
		return nil, end, true
	}
	return board.GenerateLegalMoves(e.root.Position), board.EndState{}, false
}

// Analyze launches a search from the current position.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}
	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if opt.ParallelDepth == 0 {
		opt.ParallelDepth = e.opts.ParallelDepth
	}

	logw.Infof(ctx, "Analyze, opt=%v", opt)

	handle, raw := e.launcher.Launch(ctx, e.root, e.eval, opt)
	e.active = handle

	// The search also ends on its own, without a Halt call, once iterative
	// deepening exhausts the position or hits its depth limit. Forward PVs
	// and clear e.active on that path too, so a later Analyze is not stuck
	// believing a finished search is still running.
	out := make(chan search.PV, 1)
	go func() {
		defer close(out)
		for pv := range raw {
			// keep only the freshest PV if the caller lags, so an abandoned
			// channel never blocks this goroutine.
			select {
			case out <- pv:
			default:
				select {
				case <-out:
				default:
				}
				out <- pv
			}
		}
		e.mu.Lock()
		if e.active == handle {
			e.active = nil
		}
		e.mu.Unlock()
	}()
	return out, nil
}

// Halt halts the active search and returns its principal variation.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActiveLocked(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchLocked(ctx context.Context) {
	e.haltSearchIfActiveLocked(ctx)
}

func (e *Engine) haltSearchIfActiveLocked(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}
	pv := e.active.Halt()
	logw.Infof(ctx, "Search halted: %v", pv)
	e.active = nil
	return pv, true
}
