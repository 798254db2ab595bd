// Package engine picks moves for the side to move: a material and mobility
// evaluator, minimax with alpha-beta pruning, and a non-searching easy mover.
// Chess rules live behind the Position interface.
package engine

import "fmt"

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return ""
	}
}

// Piece is the occupant of a square. The zero value is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

var NoPiece = Piece{}

func (p Piece) Empty() bool {
	return p.Type == NoPieceType
}

// Square indexes the board from a1 (0) to h8 (63), rank major.
type Square int8

const NumSquares = 64

const (
	D4 Square = 3*8 + 3
	E4 Square = 3*8 + 4
	D5 Square = 4*8 + 3
	E5 Square = 4*8 + 4
)

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if sq < 0 || sq >= NumSquares {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("engine: invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Move is a source square, a destination square and an optional promotion.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// String renders the move in UCI long algebraic form, e.g. "e7e8q".
func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promotion.String()
}

// ParseMove reads a UCI long algebraic move. It does not check legality.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("engine: invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promotion = Queen
		case 'r':
			m.Promotion = Rook
		case 'b':
			m.Promotion = Bishop
		case 'n':
			m.Promotion = Knight
		default:
			return Move{}, fmt.Errorf("engine: invalid promotion in %q", s)
		}
	}
	return m, nil
}

// Position is the rules provider the engine searches over.
//
// Push applies a move previously returned by LegalMoves and Pop reverts the
// most recent Push. Implementations may mutate in place or keep a stack of
// successor values; either way, after a Pop the position must be exactly what
// it was before the matching Push. Push panics on a move that is not legal in
// the current position.
type Position interface {
	Turn() Color
	LegalMoves() []Move
	Push(m Move)
	Pop()
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsGameOver() bool
	PieceAt(sq Square) Piece
	IsCapture(m Move) bool
	// Clone returns an independent copy of the current position.
	Clone() Position
}
