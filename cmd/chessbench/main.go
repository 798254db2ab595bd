// Command chessbench searches a set of positions and reports the move, score,
// node count and time for each.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/dragon"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

var defaultFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
}

type parseFunc func(fen string) (engine.Position, error)

var backends = map[string]parseFunc{
	"notnil": func(fen string) (engine.Position, error) { return board.FromFEN(fen) },
	"dragon": func(fen string) (engine.Position, error) { return dragon.FromFEN(fen) },
}

func main() {
	backend := flag.String("backend", "dragon", "move generator: notnil or dragon")
	level := flag.Int("level", engine.Hard, "difficulty level to search at, 1 to 5")
	depth := flag.Int("depth", 0, "search depth; overrides -level")
	compare := flag.Bool("compare", false, "also run the unpruned minimax and compare")
	file := flag.String("file", "", "file with one FEN per line; default is a built-in set")
	timeout := flag.Duration("timeout", time.Minute, "time limit per search")
	flag.Parse()

	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))

	parse, ok := backends[*backend]
	if !ok {
		fail("unknown backend %q", *backend)
	}
	if *depth <= 0 {
		if *level < engine.Easy || *level > engine.MaxDifficulty {
			fail("level must be between %d and %d", engine.Easy, engine.MaxDifficulty)
		}
		*depth = engine.DepthFor(*level)
	}
	if *depth == 0 {
		fail("the easy level does not search; pick a level of 2 or more")
	}

	fens := defaultFENs
	if *file != "" {
		var err error
		if fens, err = readFENs(*file); err != nil {
			fail("%v", err)
		}
	}

	fmt.Printf("%s backend %s, depth %d\n", color.New(color.Bold).Sprint("chessbench"), *backend, *depth)
	var total time.Duration
	var nodes int
	for _, fen := range fens {
		pos, err := parse(fen)
		if err != nil {
			color.Red("%s: %v", fen, err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		start := time.Now()
		res, err := engine.SearchContext(ctx, pos, *depth, -engine.Infinity, engine.Infinity, pos.Turn() == engine.White)
		elapsed := time.Since(start)
		cancel()
		if err != nil {
			report(fen, err)
			continue
		}
		total += elapsed
		nodes += res.Nodes

		fmt.Printf("%-6s %7s %9d nodes %10s  %s\n",
			color.GreenString(moveString(res.Move)), scoreString(res.Score), res.Nodes, elapsed.Round(time.Microsecond), fen)

		if *compare {
			compareMinimax(pos, *depth, res, *timeout)
		}
	}

	if total > 0 {
		nps := float64(nodes) / total.Seconds()
		fmt.Printf("%d nodes in %s, %s nodes/s\n", nodes, total.Round(time.Millisecond), color.CyanString("%.0f", nps))
	}
}

func compareMinimax(pos engine.Position, depth int, pruned engine.SearchResult, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	start := time.Now()
	full, err := engine.MinimaxContext(ctx, pos, depth, pos.Turn() == engine.White)
	if err != nil {
		report("minimax", err)
		return
	}
	verdict := color.GreenString("same")
	if full.Score != pruned.Score || moveString(full.Move) != moveString(pruned.Move) {
		verdict = color.RedString("DIFFERENT")
	}
	saved := 100 * (1 - float64(pruned.Nodes)/float64(full.Nodes))
	fmt.Printf("       minimax %s %7s %9d nodes %10s  pruned %.1f%%\n",
		verdict, scoreString(full.Score), full.Nodes, time.Since(start).Round(time.Microsecond), saved)
}

func report(what string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		color.Yellow("%s: timed out", what)
		return
	}
	color.Red("%s: %v", what, err)
}

func readFENs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fens, nil
}

func moveString(m *engine.Move) string {
	if m == nil {
		return "-"
	}
	return m.String()
}

func scoreString(s engine.Score) string {
	switch {
	case s >= engine.MateScore:
		return "mate"
	case s <= -engine.MateScore:
		return "-mate"
	default:
		return fmt.Sprintf("%+d", s)
	}
}

func fail(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(2)
}
