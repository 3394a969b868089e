// rook960 is a simple UCI and console chess engine supporting Chess960.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rook960/engine/pkg/engine"
	"github.com/rook960/engine/pkg/engine/console"
	"github.com/rook960/engine/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	depth         = flag.Uint("depth", 0, "Default search depth limit (0 for unbounded)")
	parallelDepth = flag.Uint("parallel", 0, "Plies from the root searched on a worker pool")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: rook960 [options]

rook960 is a chess engine that speaks the console debug protocol and a
UCI subset, selected by the first line of input.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "rook960", "rook960 contributors", engine.WithOptions(engine.Options{
		Depth:         *depth,
		ParallelDepth: *parallelDepth,
	}))

	in := readLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go writeLines(ctx, out)
		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go writeLines(ctx, out)
		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported: send 'uci' or 'console' as the first line")
	}
}

// readLines feeds stdin lines into a channel, closed on EOF, so the drivers
// can select over input alongside their own quit signals.
func readLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// writeLines drains a driver's output channel to stdout.
func writeLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
