package board

import (
	"errors"
	"testing"

	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

func mustMove(t *testing.T, s string) engine.Move {
	t.Helper()
	m, err := engine.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFromFENRejectsGarbage(t *testing.T) {
	for _, fen := range []string{"", "not a fen", "rnbqkbnr/pppppppp/8/8 w KQkq - 0 1"} {
		if _, err := FromFEN(fen); !errors.Is(err, ErrBadFEN) {
			t.Errorf("FromFEN(%q) = %v, want ErrBadFEN", fen, err)
		}
	}
}

func TestPushPop(t *testing.T) {
	p := Start()
	start := p.FEN()

	p.Push(mustMove(t, "e2e4"))
	p.Push(mustMove(t, "c7c5"))
	if p.Ply() != 2 {
		t.Fatalf("ply = %d", p.Ply())
	}
	if p.Turn() != engine.White {
		t.Errorf("turn = %s", p.Turn())
	}
	if got := p.PieceAt(engine.NewSquare(2, 4)); got != (engine.Piece{Type: engine.Pawn, Color: engine.Black}) {
		t.Errorf("c5 holds %v", got)
	}

	p.Pop()
	p.Pop()
	if p.FEN() != start {
		t.Errorf("got %s after popping, want %s", p.FEN(), start)
	}
}

func TestPushIllegalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	Start().Push(mustMove(t, "e2e5"))
}

func TestPopRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	Start().Pop()
}

func TestPromotionMoves(t *testing.T) {
	p, err := FromFEN("8/P7/8/8/8/8/7k/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	promos := map[engine.PieceType]bool{}
	for _, m := range p.LegalMoves() {
		if m.From.String() == "a7" {
			promos[m.Promotion] = true
		}
	}
	for _, pt := range []engine.PieceType{engine.Queen, engine.Rook, engine.Bishop, engine.Knight} {
		if !promos[pt] {
			t.Errorf("missing promotion to %s", pt)
		}
	}

	p.Push(mustMove(t, "a7a8n"))
	if got := p.PieceAt(engine.NewSquare(0, 7)); got != (engine.Piece{Type: engine.Knight, Color: engine.White}) {
		t.Errorf("a8 holds %v", got)
	}
}

func TestIsCapture(t *testing.T) {
	p, err := FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCapture(mustMove(t, "e5d6")) {
		t.Error("en passant should count as a capture")
	}
	if p.IsCapture(mustMove(t, "e5e6")) {
		t.Error("a push is not a capture")
	}
	if p.IsCapture(mustMove(t, "a1a2")) {
		t.Error("an illegal move is not a capture")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/4k3/8/8/3K4/8/8 w - - 0 1", true},
		{"8/8/4k3/8/8/3K4/8/5N2 w - - 0 1", true},
		{"8/8/4k3/8/8/3K4/8/4BB2 w - - 0 1", false},
		{"8/8/4k3/2b5/8/3K4/8/4B3 w - - 0 1", true},
		{"8/8/4k3/2b5/8/3K4/8/5B2 w - - 0 1", false},
		{"8/8/4k3/8/8/3K4/8/4NN2 w - - 0 1", false},
		{"8/8/4k3/8/8/3K4/8/4R3 w - - 0 1", false},
		{"8/8/4k3/8/8/3K4/4P3/8 w - - 0 1", false},
	}
	for _, tt := range tests {
		p, err := FromFEN(tt.fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.IsInsufficientMaterial(); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.fen, got, tt.want)
		}
	}
}

func TestFromGameIsPrivate(t *testing.T) {
	g := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	if err := g.MoveStr("e2e4"); err != nil {
		t.Fatal(err)
	}

	p := FromGame(g)
	p.Push(mustMove(t, "e7e5"))

	if len(g.Moves()) != 1 {
		t.Errorf("game has %d moves, want 1", len(g.Moves()))
	}
	if p.Current() == g.Position() {
		t.Error("expected a private position")
	}
}

func TestNativeRoundTrip(t *testing.T) {
	p := Start()
	for _, m := range p.LegalMoves() {
		native, ok := p.Native(m)
		if !ok {
			t.Fatalf("no native move for %s", m)
		}
		if FromNative(native) != m {
			t.Errorf("%s converted back to %s", m, FromNative(native))
		}
	}
}

func TestClone(t *testing.T) {
	p := Start()
	p.Push(mustMove(t, "d2d4"))

	c := p.Clone().(*Position)
	c.Push(mustMove(t, "d7d5"))

	if p.Turn() != engine.Black || c.Turn() != engine.White {
		t.Errorf("turns %s and %s", p.Turn(), c.Turn())
	}
}
