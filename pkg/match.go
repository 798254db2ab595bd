package pkg

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

var (
	errNotYourTurn    = errors.New("not your turn")
	errThinking       = errors.New("the engine is thinking")
	errGameOver       = errors.New("the game is over")
	errNothingToUndo  = errors.New("nothing to undo")
	errNotJoined      = errors.New("join the match first")
	errBadDifficulty  = fmt.Errorf("difficulty must be between %d and %d", engine.Easy, engine.MaxDifficulty)
	errUnknownMessage = errors.New("unexpected message")
)

type thought struct {
	gen int
	res engine.Result
}

// Match is one game between a connected player and the engine. All game
// state is owned by the Run goroutine.
type Match struct {
	ID           string
	Game         *chess.Game
	Player       *Player
	AI           *engine.AI
	Clock        *Clock
	In           chan MessageTransport
	ThinkTimeout time.Duration

	startFen string
	joined   bool
	thinking bool
	cancel   context.CancelFunc
	score    engine.Score
	gen      int
	thoughts chan thought

	mu         sync.Mutex
	lastActive time.Time
	quit       chan struct{}
	closeOnce  sync.Once
	done       chan struct{}
}

func NewMatch(id string, ai *engine.AI, thinkTimeout time.Duration) *Match {
	game := NewGame()
	return &Match{
		ID:           id,
		Game:         game,
		AI:           ai,
		Clock:        NewClock(),
		In:           make(chan MessageTransport, MessageQueueSize),
		ThinkTimeout: thinkTimeout,
		startFen:     game.Position().String(),
		thoughts:     make(chan thought, 1),
		lastActive:   time.Now(),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// AddConn attaches the match's player. The player must send a MessageJoin
// before anything else.
func (m *Match) AddConn(conn net.Conn) *Player {
	p := NewPlayer(conn)
	p.Id = 1
	p.Color = Unknown
	m.Player = p

	go p.HandleWrite()
	go p.HandleRead(m.In)
	return p
}

// Run processes player messages and engine results until the player leaves
// or the match is closed.
func (m *Match) Run() {
	defer close(m.done)
	defer m.shutdown()

	for {
		select {
		case msg := <-m.In:
			m.touch()
			m.handle(msg)
		case t := <-m.thoughts:
			m.finishThinking(t)
		case <-m.Player.Done:
			log.Printf("Match %s: player %s left", m.ID, m.Player.Name)
			return
		case <-m.quit:
			return
		}
	}
}

// Close stops the match and disconnects its player. It does not wait for Run
// to return; use Done for that.
func (m *Match) Close() {
	m.closeOnce.Do(func() { close(m.quit) })
}

func (m *Match) Done() <-chan struct{} {
	return m.done
}

func (m *Match) shutdown() {
	m.stopThinking()
	m.Player.Disconnect()
}

func (m *Match) touch() {
	m.mu.Lock()
	m.lastActive = time.Now()
	m.mu.Unlock()
}

// Idle reports whether the player has been silent for longer than timeout.
func (m *Match) Idle(timeout time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActive) > timeout
}

func (m *Match) handle(transport MessageTransport) {
	msg, err := transport.Unwrap()
	if err != nil {
		log.Printf("Match %s: %v", m.ID, err)
		m.sendError(err)
		return
	}

	if join, ok := msg.(MessageJoin); ok {
		m.join(join)
		return
	}
	if !m.joined {
		m.sendError(errNotJoined)
		return
	}

	switch msg := msg.(type) {
	case MessageMove:
		err = m.playerMove(msg.Move)
	case MessageAction:
		err = m.action(msg)
	default:
		err = fmt.Errorf("%w: %s", errUnknownMessage, msg.Type())
	}
	if err != nil {
		m.sendError(err)
	}
}

func (m *Match) join(join MessageJoin) {
	if m.joined {
		m.sendError(fmt.Errorf("%w: already joined", errUnknownMessage))
		return
	}
	if join.Color != Black {
		join.Color = White
	}
	if join.Difficulty != 0 {
		if join.Difficulty < engine.Easy || join.Difficulty > engine.MaxDifficulty {
			m.sendError(errBadDifficulty)
			return
		}
		m.AI.SetDifficulty(join.Difficulty)
	}

	m.joined = true
	m.Player.Name = join.Name
	m.Player.Color = join.Color
	log.Printf("Match %s: %s joined as %s at level %d", m.ID, join.Name, join.Color, m.AI.Difficulty())

	m.Player.Send(MessageConnect{
		MatchID:    m.ID,
		Name:       join.Name,
		Color:      join.Color,
		Difficulty: m.AI.Difficulty(),
		Game:       m.state(),
	})
	if m.engineToMove() {
		m.startThinking()
	}
}

func (m *Match) playerMove(move string) error {
	switch {
	case m.over():
		return errGameOver
	case m.thinking:
		return errThinking
	case !m.humanToMove():
		return errNotYourTurn
	}
	if err := m.Game.MoveStr(move); err != nil {
		return fmt.Errorf("illegal move %s: %w", move, err)
	}
	log.Printf("Match %s: %s played %s", m.ID, m.Player.Name, move)

	if m.over() {
		m.broadcast()
		return nil
	}
	m.startThinking()
	return nil
}

func (m *Match) action(msg MessageAction) error {
	switch msg.Action {
	case ActionUndo:
		if m.thinking {
			return errThinking
		}
		return m.undo()

	case ActionNewGame:
		m.stopThinking()
		m.Game = NewGame()
		m.startFen = m.Game.Position().String()
		m.score = 0
		m.broadcast()
		if m.engineToMove() {
			m.startThinking()
		}

	case ActionResignYes:
		if m.over() {
			return errGameOver
		}
		m.stopThinking()
		m.Game.Resign(nativeColor(m.Player.Color))
		m.broadcast()

	case ActionDifficulty:
		if msg.Difficulty < engine.Easy || msg.Difficulty > engine.MaxDifficulty {
			return errBadDifficulty
		}
		m.AI.SetDifficulty(msg.Difficulty)
		m.broadcast()

	default:
		return fmt.Errorf("%w: action %q", errUnknownMessage, msg.Action)
	}
	return nil
}

// undo takes back the player's last move together with the engine's reply,
// leaving the player to move again.
func (m *Match) undo() error {
	moves := MoveStrings(m.Game)
	n := 1
	if m.humanToMove() {
		n = 2
	}
	if len(moves) < n {
		return errNothingToUndo
	}

	game, err := ReplayGame(m.startFen, moves[:len(moves)-n])
	if err != nil {
		return err
	}
	m.Game = game
	m.broadcast()
	return nil
}

func (m *Match) startThinking() {
	m.stopThinking()

	ctx := context.Background()
	var cancel context.CancelFunc
	if m.ThinkTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.ThinkTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	m.gen++
	gen := m.gen
	m.cancel = cancel
	m.thinking = true
	m.Clock.Start()

	results := m.AI.Go(ctx, board.FromGame(m.Game))
	go func() {
		res := <-results
		select {
		case m.thoughts <- thought{gen: gen, res: res}:
		case <-m.quit:
		}
	}()
	m.broadcast()
}

// stopThinking abandons the current search; its result will be ignored.
func (m *Match) stopThinking() {
	if !m.thinking {
		return
	}
	m.cancel()
	m.Clock.Stop()
	m.thinking = false
	m.gen++
}

func (m *Match) finishThinking(t thought) {
	if t.gen != m.gen || !m.thinking {
		return
	}
	m.cancel()
	elapsed := m.Clock.Stop()
	m.thinking = false

	res := t.res
	if res.Err != nil {
		log.Printf("Match %s: engine failed after %s: %v", m.ID, elapsed, res.Err)
		res.Move = fallbackMove(board.FromGame(m.Game), m.AI)
		res.Score = m.score
		if res.Move != nil {
			m.sendError(fmt.Errorf("the engine gave up thinking and played %s: %w", res.Move, res.Err))
		}
	}
	switch {
	case res.Move == nil:
		log.Printf("Match %s: engine has no move", m.ID)
	default:
		if err := m.applyEngineMove(*res.Move); err != nil {
			log.Printf("Match %s: %v", m.ID, err)
			m.sendError(fmt.Errorf("the engine could not move: %w", err))
			break
		}
		m.score = res.Score
	}
	m.broadcast()
}

// applyEngineMove plays mv, which the engine chose on a copy of the game.
func (m *Match) applyEngineMove(mv engine.Move) error {
	native, ok := board.FromGame(m.Game).Native(mv)
	if !ok {
		return fmt.Errorf("engine move %s is not legal here", mv)
	}
	return m.Game.Move(native)
}

// fallbackMove picks a move with the easy mover when the search gave up. It
// returns nil instead of panicking.
func fallbackMove(pos engine.Position, rnd engine.Rand) (mv *engine.Move) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: fallback move failed: %v", r)
			mv = nil
		}
	}()
	return engine.PickMove(pos, rnd)
}

func (m *Match) humanToMove() bool {
	return m.Game.Position().Turn() == nativeColor(m.Player.Color)
}

func (m *Match) engineToMove() bool {
	return !m.over() && m.Game.Position().Turn() == nativeColor(m.Player.Color.Opponent())
}

func (m *Match) over() bool {
	outcome, _ := GameResult(m.Game)
	return outcome != chess.NoOutcome
}

func (m *Match) state() MessageGame {
	outcome, method := GameResult(m.Game)
	return MessageGame{
		StartFen:   m.startFen,
		Moves:      MoveStrings(m.Game),
		IsTurn:     !m.thinking && outcome == chess.NoOutcome && m.humanToMove(),
		Thinking:   m.thinking,
		Difficulty: m.AI.Difficulty(),
		Score:      int(m.score),
		Outcome:    string(outcome),
		Method:     MethodName(method),
	}
}

func (m *Match) broadcast() {
	m.Player.Send(m.state())
}

func (m *Match) sendError(err error) {
	m.Player.Send(MessageError{Msg: err.Error()})
}

func nativeColor(c PlayerColor) chess.Color {
	if c == Black {
		return chess.Black
	}
	return chess.White
}
