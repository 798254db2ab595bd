package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

// Difficulty presets. Easy never searches; every other level searches
// level+1 plies.
const (
	Easy              = 1
	Medium            = 2
	Hard              = 3
	MaxDifficulty     = 5
	DefaultDifficulty = Medium
)

// DepthFor returns the search depth for a difficulty level, or 0 for the
// easy mover.
func DepthFor(level int) int {
	if level <= Easy {
		return 0
	}
	return level + 1
}

// AI chooses moves at a configurable difficulty. It is safe for concurrent
// use as long as each call gets its own Position.
type AI struct {
	mu         sync.Mutex
	difficulty int
	rnd        Rand
}

type Option func(*AI)

// WithRand replaces the random source used by the easy mover and by the
// fallback choice when a search yields no move.
func WithRand(r Rand) Option {
	return func(ai *AI) {
		ai.rnd = r
	}
}

func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func NewAI(difficulty int, opts ...Option) *AI {
	ai := &AI{difficulty: difficulty}
	for _, opt := range opts {
		opt(ai)
	}
	if ai.rnd == nil {
		ai.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return ai
}

func (ai *AI) Difficulty() int {
	ai.mu.Lock()
	defer ai.mu.Unlock()
	return ai.difficulty
}

func (ai *AI) SetDifficulty(level int) {
	ai.mu.Lock()
	defer ai.mu.Unlock()
	ai.difficulty = level
}

// Intn draws from the AI's random source under its lock.
func (ai *AI) Intn(n int) int {
	ai.mu.Lock()
	defer ai.mu.Unlock()
	return ai.rnd.Intn(n)
}

type Result struct {
	Move       *Move
	Score      Score
	Difficulty int
	// Depth is zero when the easy mover picked the move.
	Depth   int
	Nodes   int
	Elapsed time.Duration
	Err     error
}

// BestMove returns the move to play in pos, or nil when pos has no legal
// moves.
func (ai *AI) BestMove(pos Position) *Move {
	res, _ := ai.Think(context.Background(), pos)
	return res.Move
}

// Think is BestMove with search statistics and cancellation. The only error
// it returns is ctx's.
func (ai *AI) Think(ctx context.Context, pos Position) (Result, error) {
	start := time.Now()
	level := ai.Difficulty()
	res := Result{Difficulty: level}

	if level <= Easy {
		res.Move = PickMove(pos, ai)
		res.Elapsed = time.Since(start)
		return res, nil
	}

	res.Depth = DepthFor(level)
	sr, err := SearchContext(ctx, pos, res.Depth, -Infinity, Infinity, pos.Turn() == White)
	res.Nodes = sr.Nodes
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res, err
	}
	res.Score = sr.Score
	res.Move = sr.Move
	if res.Move == nil {
		res.Move = choose(pos.LegalMoves(), ai)
	}
	res.Elapsed = time.Since(start)

	log.Printf("engine: level %d depth %d move %s score %d nodes %d in %s",
		level, res.Depth, moveString(res.Move), res.Score, res.Nodes, res.Elapsed)
	return res, nil
}

// Go thinks about a private copy of pos on its own goroutine and delivers
// exactly one Result on the returned channel. A panic raised by the position
// or the search is logged and reported as a Result without a move.
func (ai *AI) Go(ctx context.Context, pos Position) <-chan Result {
	out := make(chan Result, 1)

	private, err := clonePosition(pos)
	if err != nil {
		log.Printf("engine: %v", err)
		out <- Result{Difficulty: ai.Difficulty(), Err: err}
		close(out)
		return out
	}

	go func() {
		var res Result
		defer func() {
			if r := recover(); r != nil {
				log.Printf("engine: search failed: %v", r)
				res = Result{Difficulty: ai.Difficulty(), Err: fmt.Errorf("engine: search failed: %v", r)}
			}
			out <- res
			close(out)
		}()
		res, _ = ai.Think(ctx, private)
	}()
	return out
}

func clonePosition(pos Position) (private Position, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: clone position: %v", r)
		}
	}()
	return pos.Clone(), nil
}

func moveString(m *Move) string {
	if m == nil {
		return "(none)"
	}
	return m.String()
}
