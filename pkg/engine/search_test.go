package engine

import (
	"context"
	"testing"
)

func TestSearchDepthZeroIsEvaluate(t *testing.T) {
	pos := newTreePos(branch(leaf(1), leaf(2)))
	pos.cur().pawns = 3

	score, move := Search(pos, 0, -Infinity, Infinity, true)
	if move != nil {
		t.Errorf("expected no move at depth 0, got %s", move)
	}
	if want := Evaluate(pos); score != want {
		t.Errorf("score = %d, want %d", score, want)
	}
}

func TestSearchPicksBestMove(t *testing.T) {
	tests := []struct {
		name       string
		root       *node
		maximizing bool
		score      Score
		move       Square
	}{
		{"max", branch(leaf(1), leaf(3), leaf(2)), true, 300, 1},
		{"min", branch(leaf(1), leaf(-3), leaf(2)), false, -300, 1},
		{"max keeps earliest tie", branch(leaf(2), leaf(2), leaf(1)), true, 200, 0},
		{"min keeps earliest tie", branch(leaf(2), leaf(-1), leaf(-1)), false, -100, 1},
		{"two ply", branch(branch(leaf(3), leaf(5)), branch(leaf(2), leaf(9)), branch(leaf(4), leaf(6))), true, 400, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := newTreePos(tt.root)
			score, move := Search(pos, 2, -Infinity, Infinity, tt.maximizing)
			if move == nil {
				t.Fatal("expected a move")
			}
			if score != tt.score || move.To != tt.move {
				t.Errorf("got %s %d, want move to %s score %d", move, score, tt.move, tt.score)
			}
			if len(pos.path) != 1 {
				t.Errorf("position not restored, path length %d", len(pos.path))
			}
		})
	}
}

func TestSearchPrunesWhatMinimaxVisits(t *testing.T) {
	// After the first subtree alpha is 3; the second subtree's first leaf
	// scores 2, so its sibling 9 is never looked at.
	root := branch(branch(leaf(3), leaf(5)), branch(leaf(2), leaf(9)))

	ab, err := SearchContext(context.Background(), newTreePos(root), 2, -Infinity, Infinity, true)
	if err != nil {
		t.Fatal(err)
	}
	mm, err := MinimaxContext(context.Background(), newTreePos(root), 2, true)
	if err != nil {
		t.Fatal(err)
	}

	if ab.Score != 300 || mm.Score != 300 {
		t.Errorf("scores: alpha-beta %d, minimax %d, want 300", ab.Score, mm.Score)
	}
	if *ab.Move != *mm.Move {
		t.Errorf("moves differ: alpha-beta %s, minimax %s", ab.Move, mm.Move)
	}
	if ab.Nodes != 6 || mm.Nodes != 7 {
		t.Errorf("nodes: alpha-beta %d, minimax %d, want 6 and 7", ab.Nodes, mm.Nodes)
	}
}

func TestSearchStopsAtGameOver(t *testing.T) {
	// The first move ends the game immediately; depth is not exhausted there.
	root := branch(leaf(1), branch(leaf(-5)))
	score, move := Search(newTreePos(root), 4, -Infinity, Infinity, true)
	if score != 100 || move.To != 0 {
		t.Errorf("got %s %d, want first move with 100", move, score)
	}
}

func TestSearchRestoresPositionOnPanic(t *testing.T) {
	pos := newTreePos(branch(branch(leaf(1)), leaf(2)))
	pos.panicOnPush = 2

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the search to panic")
			}
		}()
		Search(pos, 3, -Infinity, Infinity, true)
	}()

	if len(pos.path) != 1 {
		t.Errorf("position not restored, path length %d", len(pos.path))
	}
}

func TestEvaluateMobilityCountsSideToMove(t *testing.T) {
	white := newTreePos(branch(leaf(0), leaf(0), leaf(0)))
	if got := Evaluate(white); got != 6 {
		t.Errorf("white to move: got %d, want 6", got)
	}

	black := newTreePos(branch(leaf(0)))
	black.path = append(black.path, branch(leaf(0), leaf(0)))
	if got := Evaluate(black); got != -4 {
		t.Errorf("black to move: got %d, want -4", got)
	}
}
