package board

import (
	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

func FromNativeType(pt chess.PieceType) engine.PieceType {
	switch pt {
	case chess.Pawn:
		return engine.Pawn
	case chess.Knight:
		return engine.Knight
	case chess.Bishop:
		return engine.Bishop
	case chess.Rook:
		return engine.Rook
	case chess.Queen:
		return engine.Queen
	case chess.King:
		return engine.King
	default:
		return engine.NoPieceType
	}
}

func ToNativeType(pt engine.PieceType) chess.PieceType {
	switch pt {
	case engine.Pawn:
		return chess.Pawn
	case engine.Knight:
		return chess.Knight
	case engine.Bishop:
		return chess.Bishop
	case engine.Rook:
		return chess.Rook
	case engine.Queen:
		return chess.Queen
	case engine.King:
		return chess.King
	default:
		return chess.NoPieceType
	}
}

func FromNativePiece(p chess.Piece) engine.Piece {
	if p == chess.NoPiece {
		return engine.NoPiece
	}
	c := engine.White
	if p.Color() == chess.Black {
		c = engine.Black
	}
	return engine.Piece{Type: FromNativeType(p.Type()), Color: c}
}

func FromNative(m *chess.Move) engine.Move {
	return engine.Move{
		From:      engine.Square(m.S1()),
		To:        engine.Square(m.S2()),
		Promotion: FromNativeType(m.Promo()),
	}
}

// insufficientMaterial reports whether neither side can ever deliver mate:
// bare kings, a single knight, or bishops that all stand on one square colour.
func insufficientMaterial(b *chess.Board) bool {
	var knights, bishops int
	var light, dark bool
	for sq, p := range b.SquareMap() {
		switch p.Type() {
		case chess.King:
		case chess.Knight:
			knights++
		case chess.Bishop:
			bishops++
			if (int(sq.File())+int(sq.Rank()))%2 == 0 {
				dark = true
			} else {
				light = true
			}
		default:
			return false
		}
	}
	switch {
	case knights == 0 && bishops == 0:
		return true
	case knights == 1 && bishops == 0:
		return true
	case knights == 0:
		return !(light && dark)
	default:
		return false
	}
}
