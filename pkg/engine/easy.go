package engine

import "golang.org/x/exp/slices"

// Rand is the random source used for uniform choices. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var centerSquares = []Square{D4, E4, D5, E5}

// PickMove is the easy-level mover. It prefers a random capture, then a
// random move landing on one of the four center squares, then any random
// legal move. It never searches or evaluates. It returns nil when there are
// no legal moves.
func PickMove(pos Position, rnd Rand) *Move {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil
	}

	var captures, center []Move
	for _, m := range moves {
		if pos.IsCapture(m) {
			captures = append(captures, m)
		}
		if slices.Contains(centerSquares, m.To) {
			center = append(center, m)
		}
	}

	switch {
	case len(captures) > 0:
		return choose(captures, rnd)
	case len(center) > 0:
		return choose(center, rnd)
	default:
		return choose(moves, rnd)
	}
}

func choose(moves []Move, rnd Rand) *Move {
	if len(moves) == 0 {
		return nil
	}
	m := moves[rnd.Intn(len(moves))]
	return &m
}
