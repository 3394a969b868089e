// perft is a move generator debugging tool. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rook960/engine/pkg/board"
	"github.com/rook960/engine/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	chess960 = flag.Int("chess960", -1, "Chess960 starting id 0..959 (overrides -fen)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	var pos *board.Position
	var err error
	switch {
	case *chess960 >= 0:
		pos, err = board.FromChess960(*chess960)
	case *position != "":
		pos, _, _, err = fen.Decode(*position)
	default:
		pos, _, _, err = fen.Decode(fen.Initial)
	}
	if err != nil {
		logw.Exitf(ctx, "Invalid start position: %v", err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v\n", i, nodes, duration.Microseconds())
	}
}

func perft(pos *board.Position, depth int, divide bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range board.GenerateLegalMoves(pos) {
		count := perft(pos.ApplyMove(m), depth-1, false)
		if divide {
			fmt.Printf("%v: %v\n", board.FormatMove(m, false), count)
		}
		nodes += count
	}
	return nodes
}
