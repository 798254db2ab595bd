package engine

type Score int

const (
	MateScore Score = 10000
	DrawScore Score = 0
	// Infinity bounds every reachable evaluation and stands in for ±∞ in
	// the search window.
	Infinity Score = 1 << 30
)

const mobilityWeight = 2

var pieceValues = [...]Score{
	NoPieceType: 0,
	Pawn:        100,
	Knight:      320,
	Bishop:      330,
	Rook:        500,
	Queen:       900,
	King:        20000,
}

// PieceValue returns the material value of a piece type.
func PieceValue(pt PieceType) Score {
	if pt < 0 || int(pt) >= len(pieceValues) {
		return 0
	}
	return pieceValues[pt]
}

// Evaluate scores pos from White's point of view.
//
// A checkmated side to move scores as a mate against it; stalemate and
// insufficient material are draws. Otherwise the score is the signed material
// balance plus a mobility bonus for the side to move only: two points per
// legal move, added when White is to move and subtracted when Black is.
func Evaluate(pos Position) Score {
	if pos.IsCheckmate() {
		if pos.Turn() == White {
			return -MateScore
		}
		return MateScore
	}
	if pos.IsStalemate() || pos.IsInsufficientMaterial() {
		return DrawScore
	}

	var score Score
	for sq := Square(0); sq < NumSquares; sq++ {
		p := pos.PieceAt(sq)
		if p.Empty() {
			continue
		}
		if p.Color == White {
			score += PieceValue(p.Type)
		} else {
			score -= PieceValue(p.Type)
		}
	}

	mobility := Score(len(pos.LegalMoves()) * mobilityWeight)
	if pos.Turn() == White {
		score += mobility
	} else {
		score -= mobility
	}
	return score
}
