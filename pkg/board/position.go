// Package board adapts github.com/notnil/chess to the engine's Position
// contract. notnil positions are immutable, so Push stacks the successor
// returned by Update and Pop drops it.
package board

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

var ErrBadFEN = errors.New("board: invalid FEN")

type frame struct {
	pos    *chess.Position
	board  *chess.Board
	native []*chess.Move
	moves  []engine.Move
}

func newFrame(pos *chess.Position) *frame {
	return &frame{pos: pos}
}

func (f *frame) legal() ([]engine.Move, []*chess.Move) {
	if f.native == nil {
		f.native = f.pos.ValidMoves()
		f.moves = make([]engine.Move, len(f.native))
		for i, m := range f.native {
			f.moves[i] = FromNative(m)
		}
	}
	return f.moves, f.native
}

func (f *frame) squares() *chess.Board {
	if f.board == nil {
		f.board = f.pos.Board()
	}
	return f.board
}

func (f *frame) find(m engine.Move) (*chess.Move, bool) {
	moves, native := f.legal()
	for i := range moves {
		if moves[i] == m {
			return native[i], true
		}
	}
	return nil, false
}

// Position is an engine.Position over notnil/chess. It is not safe for
// concurrent use; hand each goroutine its own Clone.
type Position struct {
	stack []*frame
}

var _ engine.Position = (*Position)(nil)

// New wraps pos. notnil caches move generation inside the position, so do not
// share pos with another goroutine while the result is searched.
func New(pos *chess.Position) *Position {
	return &Position{stack: []*frame{newFrame(pos)}}
}

func FromFEN(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	return New(chess.NewGame(opt).Position()), nil
}

// FromGame returns a private copy of the game's current position.
func FromGame(g *chess.Game) *Position {
	p, err := FromFEN(g.Position().String())
	if err != nil {
		// notnil always renders a FEN it can read back.
		panic(err)
	}
	return p
}

func Start() *Position {
	return New(chess.NewGame().Position())
}

func (p *Position) top() *frame {
	return p.stack[len(p.stack)-1]
}

// Current returns the notnil position at the top of the stack.
func (p *Position) Current() *chess.Position {
	return p.top().pos
}

func (p *Position) FEN() string {
	return p.top().pos.String()
}

func (p *Position) String() string {
	return p.FEN()
}

// Ply counts the moves pushed since construction.
func (p *Position) Ply() int {
	return len(p.stack) - 1
}

func (p *Position) Turn() engine.Color {
	if p.top().pos.Turn() == chess.Black {
		return engine.Black
	}
	return engine.White
}

func (p *Position) LegalMoves() []engine.Move {
	moves, _ := p.top().legal()
	out := make([]engine.Move, len(moves))
	copy(out, moves)
	return out
}

// Native returns the notnil move matching m in the current position.
func (p *Position) Native(m engine.Move) (*chess.Move, bool) {
	return p.top().find(m)
}

func (p *Position) Push(m engine.Move) {
	native, ok := p.top().find(m)
	if !ok {
		panic(fmt.Sprintf("board: illegal move %s in %s", m, p.FEN()))
	}
	p.stack = append(p.stack, newFrame(p.top().pos.Update(native)))
}

func (p *Position) Pop() {
	if len(p.stack) == 1 {
		panic("board: pop without a matching push")
	}
	p.stack[len(p.stack)-1] = nil
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Position) IsCheckmate() bool {
	p.top().legal()
	return p.top().pos.Status() == chess.Checkmate
}

func (p *Position) IsStalemate() bool {
	p.top().legal()
	return p.top().pos.Status() == chess.Stalemate
}

func (p *Position) IsInsufficientMaterial() bool {
	return insufficientMaterial(p.top().squares())
}

func (p *Position) IsGameOver() bool {
	moves, _ := p.top().legal()
	return len(moves) == 0 || p.IsInsufficientMaterial()
}

func (p *Position) PieceAt(sq engine.Square) engine.Piece {
	return FromNativePiece(p.top().squares().Piece(chess.Square(sq)))
}

func (p *Position) IsCapture(m engine.Move) bool {
	native, ok := p.top().find(m)
	if !ok {
		return false
	}
	return native.HasTag(chess.Capture) || native.HasTag(chess.EnPassant)
}

func (p *Position) Clone() engine.Position {
	c, err := FromFEN(p.FEN())
	if err != nil {
		panic(err)
	}
	return c
}
