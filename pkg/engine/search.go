package engine

import "context"

// pollInterval is how many nodes are visited between cancellation checks.
const pollInterval = 1024

type SearchResult struct {
	Score Score
	Move  *Move
	Nodes int
}

type searcher struct {
	ctx     context.Context
	nodes   int
	aborted bool
}

func newSearcher(ctx context.Context) *searcher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &searcher{ctx: ctx}
}

// Search runs a depth-limited minimax with alpha-beta pruning and returns the
// score of pos together with the move that achieves it. The move is nil when
// depth is zero or pos is already over.
//
// Moves are tried in the order LegalMoves yields them and a move only
// replaces the current best on a strictly better score, so ties keep the
// earlier move. Every move pushed onto pos is popped before Search returns.
func Search(pos Position, depth int, alpha, beta Score, maximizing bool) (Score, *Move) {
	s := newSearcher(context.Background())
	return s.alphaBeta(pos, depth, alpha, beta, maximizing)
}

// SearchContext is Search with cooperative cancellation. Once ctx is done the
// search unwinds, restoring pos, and returns ctx.Err().
func SearchContext(ctx context.Context, pos Position, depth int, alpha, beta Score, maximizing bool) (SearchResult, error) {
	s := newSearcher(ctx)
	score, move := s.alphaBeta(pos, depth, alpha, beta, maximizing)
	if s.aborted {
		return SearchResult{Nodes: s.nodes}, s.ctx.Err()
	}
	return SearchResult{Score: score, Move: move, Nodes: s.nodes}, nil
}

// Minimax is the unpruned search. It returns the same score as Search for the
// same depth and breaks ties the same way.
func Minimax(pos Position, depth int, maximizing bool) (Score, *Move) {
	s := newSearcher(context.Background())
	return s.minimax(pos, depth, maximizing)
}

func MinimaxContext(ctx context.Context, pos Position, depth int, maximizing bool) (SearchResult, error) {
	s := newSearcher(ctx)
	score, move := s.minimax(pos, depth, maximizing)
	if s.aborted {
		return SearchResult{Nodes: s.nodes}, s.ctx.Err()
	}
	return SearchResult{Score: score, Move: move, Nodes: s.nodes}, nil
}

// enter counts a node and reports whether the search should keep going.
func (s *searcher) enter() bool {
	s.nodes++
	if s.nodes%pollInterval == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	return !s.aborted
}

func (s *searcher) alphaBeta(pos Position, depth int, alpha, beta Score, maximizing bool) (Score, *Move) {
	if !s.enter() {
		return 0, nil
	}
	if depth == 0 || pos.IsGameOver() {
		return Evaluate(pos), nil
	}

	var best *Move
	if maximizing {
		maxEval := -Infinity
		for _, m := range pos.LegalMoves() {
			score := s.child(pos, m, func() Score {
				score, _ := s.alphaBeta(pos, depth-1, alpha, beta, false)
				return score
			})
			if s.aborted {
				return 0, nil
			}
			if score > maxEval {
				maxEval = score
				mv := m
				best = &mv
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return maxEval, best
	}

	minEval := Infinity
	for _, m := range pos.LegalMoves() {
		score := s.child(pos, m, func() Score {
			score, _ := s.alphaBeta(pos, depth-1, alpha, beta, true)
			return score
		})
		if s.aborted {
			return 0, nil
		}
		if score < minEval {
			minEval = score
			mv := m
			best = &mv
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return minEval, best
}

func (s *searcher) minimax(pos Position, depth int, maximizing bool) (Score, *Move) {
	if !s.enter() {
		return 0, nil
	}
	if depth == 0 || pos.IsGameOver() {
		return Evaluate(pos), nil
	}

	var best *Move
	bestEval := Infinity
	if maximizing {
		bestEval = -Infinity
	}
	for _, m := range pos.LegalMoves() {
		score := s.child(pos, m, func() Score {
			score, _ := s.minimax(pos, depth-1, !maximizing)
			return score
		})
		if s.aborted {
			return 0, nil
		}
		if (maximizing && score > bestEval) || (!maximizing && score < bestEval) {
			bestEval = score
			mv := m
			best = &mv
		}
	}
	return bestEval, best
}

// child plays m, scores the resulting position and takes m back. The undo is
// deferred so it also runs when the provider or the search panics.
func (s *searcher) child(pos Position, m Move, score func() Score) Score {
	pos.Push(m)
	defer pos.Pop()
	return score()
}
