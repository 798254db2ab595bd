package gui

import (
	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

// PromotionPieces are offered when a pawn reaches the last rank.
var PromotionPieces = []engine.PieceType{engine.Queen, engine.Rook, engine.Bishop, engine.Knight}

// NoSquare marks the absence of a selection.
const NoSquare = chess.NoSquare

// View is everything the renderer needs to draw one frame of a game.
type View struct {
	Game       *chess.Game
	Human      chess.Color
	Flip       bool         // Black at the bottom
	Selected   chess.Square // Square picked as the move source, or NoSquare
	Thinking   bool
	ThinkTime  string
	Score      int // Engine evaluation in centipawns, White positive
	Difficulty int
	Msg        string
}

func NewView(game *chess.Game) *View {
	return &View{Game: game, Human: chess.White, Selected: NoSquare}
}

// Targets returns the destinations of the legal moves from the selected
// square.
func (v *View) Targets() map[chess.Square]bool {
	targets := make(map[chess.Square]bool)
	if v.Selected == NoSquare {
		return targets
	}
	for _, m := range v.Game.ValidMoves() {
		if m.S1() == v.Selected {
			targets[m.S2()] = true
		}
	}
	return targets
}

// MovesBetween returns the legal moves from s1 to s2; more than one means
// the player has to choose a promotion piece.
func (v *View) MovesBetween(s1, s2 chess.Square) []*chess.Move {
	var moves []*chess.Move
	for _, m := range v.Game.ValidMoves() {
		if m.S1() == s1 && m.S2() == s2 {
			moves = append(moves, m)
		}
	}
	return moves
}

// Promotion returns the legal move from s1 to s2 that promotes to pt.
func (v *View) Promotion(s1, s2 chess.Square, pt engine.PieceType) *chess.Move {
	want := board.ToNativeType(pt)
	for _, m := range v.MovesBetween(s1, s2) {
		if m.Promo() == want {
			return m
		}
	}
	return nil
}

// InCheck reports whether the side to move is in check.
func (v *View) InCheck() bool {
	moves := v.Game.Moves()
	return len(moves) > 0 && moves[len(moves)-1].HasTag(chess.Check)
}

func (v *View) LastMove() *chess.Move {
	moves := v.Game.Moves()
	if len(moves) == 0 {
		return nil
	}
	return moves[len(moves)-1]
}
