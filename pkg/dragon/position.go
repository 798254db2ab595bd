// Package dragon adapts github.com/dylhunn/dragontoothmg to the engine's
// Position contract. The board is mutated in place; Push keeps the unapply
// closure returned by Apply and Pop runs it.
package dragon

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

// darkSquares has a bit set for every dark square; a1 is dark.
const darkSquares uint64 = 0xAA55AA55AA55AA55

type frame struct {
	unapply func()
	moves   []dragontoothmg.Move
	ok      bool
}

type Position struct {
	board  dragontoothmg.Board
	frames []frame
}

var _ engine.Position = (*Position)(nil)

func newPosition(b dragontoothmg.Board) *Position {
	return &Position{board: b, frames: []frame{{}}}
}

// FromFEN parses fen. The FEN is validated by notnil/chess first, since
// dragontoothmg panics or silently misreads malformed input.
func FromFEN(fen string) (p *Position, err error) {
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrBadFEN, err)
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", board.ErrBadFEN, r)
		}
	}()
	return newPosition(dragontoothmg.ParseFen(fen)), nil
}

func Start() *Position {
	return newPosition(dragontoothmg.ParseFen(dragontoothmg.Startpos))
}

func (p *Position) FEN() string {
	return p.board.ToFen()
}

func (p *Position) String() string {
	return p.FEN()
}

func (p *Position) Ply() int {
	return len(p.frames) - 1
}

func (p *Position) top() *frame {
	return &p.frames[len(p.frames)-1]
}

func (p *Position) legal() []dragontoothmg.Move {
	f := p.top()
	if !f.ok {
		f.moves = p.board.GenerateLegalMoves()
		f.ok = true
	}
	return f.moves
}

func (p *Position) find(m engine.Move) (dragontoothmg.Move, bool) {
	for _, dm := range p.legal() {
		if toEngine(dm) == m {
			return dm, true
		}
	}
	return 0, false
}

func (p *Position) Turn() engine.Color {
	if p.board.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (p *Position) LegalMoves() []engine.Move {
	native := p.legal()
	out := make([]engine.Move, len(native))
	for i, dm := range native {
		out[i] = toEngine(dm)
	}
	return out
}

func (p *Position) Push(m engine.Move) {
	dm, ok := p.find(m)
	if !ok {
		panic(fmt.Sprintf("dragon: illegal move %s in %s", m, p.FEN()))
	}
	p.frames = append(p.frames, frame{unapply: p.board.Apply(dm)})
}

func (p *Position) Pop() {
	if len(p.frames) == 1 {
		panic("dragon: pop without a matching push")
	}
	f := p.frames[len(p.frames)-1]
	p.frames[len(p.frames)-1] = frame{}
	p.frames = p.frames[:len(p.frames)-1]
	f.unapply()
}

func (p *Position) IsCheckmate() bool {
	return len(p.legal()) == 0 && p.board.OurKingInCheck()
}

func (p *Position) IsStalemate() bool {
	return len(p.legal()) == 0 && !p.board.OurKingInCheck()
}

func (p *Position) IsInsufficientMaterial() bool {
	w, b := &p.board.White, &p.board.Black
	if w.Pawns|b.Pawns|w.Rooks|b.Rooks|w.Queens|b.Queens != 0 {
		return false
	}
	knights := bits.OnesCount64(w.Knights | b.Knights)
	bishops := w.Bishops | b.Bishops
	switch {
	case knights == 0 && bishops == 0:
		return true
	case knights == 1 && bishops == 0:
		return true
	case knights == 0:
		return bishops&darkSquares == 0 || bishops&^darkSquares == 0
	default:
		return false
	}
}

func (p *Position) IsGameOver() bool {
	return len(p.legal()) == 0 || p.IsInsufficientMaterial()
}

func (p *Position) PieceAt(sq engine.Square) engine.Piece {
	mask := uint64(1) << uint(sq)
	if pt := pieceOn(&p.board.White, mask); pt != engine.NoPieceType {
		return engine.Piece{Type: pt, Color: engine.White}
	}
	if pt := pieceOn(&p.board.Black, mask); pt != engine.NoPieceType {
		return engine.Piece{Type: pt, Color: engine.Black}
	}
	return engine.NoPiece
}

// IsCapture also reports en passant, which dragontoothmg.IsCapture misses
// because the target square is empty.
func (p *Position) IsCapture(m engine.Move) bool {
	dm, ok := p.find(m)
	if !ok {
		return false
	}
	if dragontoothmg.IsCapture(dm, &p.board) {
		return true
	}
	own := &p.board.White
	if !p.board.Wtomove {
		own = &p.board.Black
	}
	return own.Pawns&(uint64(1)<<dm.From()) != 0 && dm.From()%8 != dm.To()%8
}

// Clone copies the board by value; dragontoothmg boards hold no pointers.
func (p *Position) Clone() engine.Position {
	return newPosition(p.board)
}

func pieceOn(bb *dragontoothmg.Bitboards, mask uint64) engine.PieceType {
	switch {
	case bb.All&mask == 0:
		return engine.NoPieceType
	case bb.Pawns&mask != 0:
		return engine.Pawn
	case bb.Knights&mask != 0:
		return engine.Knight
	case bb.Bishops&mask != 0:
		return engine.Bishop
	case bb.Rooks&mask != 0:
		return engine.Rook
	case bb.Queens&mask != 0:
		return engine.Queen
	case bb.Kings&mask != 0:
		return engine.King
	default:
		return engine.NoPieceType
	}
}

func toEngine(dm dragontoothmg.Move) engine.Move {
	m := engine.Move{From: engine.Square(dm.From()), To: engine.Square(dm.To())}
	switch dm.Promote() {
	case dragontoothmg.Knight:
		m.Promotion = engine.Knight
	case dragontoothmg.Bishop:
		m.Promotion = engine.Bishop
	case dragontoothmg.Rook:
		m.Promotion = engine.Rook
	case dragontoothmg.Queen:
		m.Promotion = engine.Queen
	}
	return m
}
