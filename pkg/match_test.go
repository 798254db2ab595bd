package pkg

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

// testConn is the client end of a match connection.
type testConn struct {
	t       *testing.T
	conn    net.Conn
	scanner *bufio.Scanner
}

func dialLocal(t *testing.T, level int) (*testConn, *Match) {
	t.Helper()
	conn, m := LocalMatch(engine.NewAI(level, engine.WithSeed(7)), 10*time.Second)
	t.Cleanup(func() {
		m.Close()
		conn.Close()
		<-m.Done()
	})
	return &testConn{t: t, conn: conn, scanner: bufio.NewScanner(conn)}, m
}

func (c *testConn) send(m MessageInterface) {
	c.t.Helper()
	if err := writeMessage(c.conn, m); err != nil {
		c.t.Fatalf("send %s: %v", m.Type(), err)
	}
}

func (c *testConn) read() MessageInterface {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	if !c.scanner.Scan() {
		c.t.Fatalf("connection closed: %v", c.scanner.Err())
	}
	var transport MessageTransport
	if err := Decode(c.scanner.Bytes(), &transport); err != nil {
		c.t.Fatal(err)
	}
	msg, err := transport.Unwrap()
	if err != nil {
		c.t.Fatal(err)
	}
	return msg
}

func (c *testConn) readGame() MessageGame {
	c.t.Helper()
	msg := c.read()
	game, ok := msg.(MessageGame)
	if !ok {
		c.t.Fatalf("expected a game, got %#v", msg)
	}
	return game
}

// settle reads game states until the engine is done thinking.
func (c *testConn) settle() MessageGame {
	c.t.Helper()
	for {
		if game := c.readGame(); !game.Thinking {
			return game
		}
	}
}

func (c *testConn) readError() string {
	c.t.Helper()
	msg := c.read()
	e, ok := msg.(MessageError)
	if !ok {
		c.t.Fatalf("expected an error, got %#v", msg)
	}
	return e.Msg
}

func (c *testConn) join(color PlayerColor, level int) MessageConnect {
	c.t.Helper()
	c.send(MessageJoin{Name: "tester", Color: color, Difficulty: level})
	msg := c.read()
	connect, ok := msg.(MessageConnect)
	if !ok {
		c.t.Fatalf("expected a connect, got %#v", msg)
	}
	return connect
}

func TestMatchJoinAsWhite(t *testing.T) {
	c, _ := dialLocal(t, engine.Medium)
	connect := c.join(White, engine.Easy)

	if connect.MatchID != "local" || connect.Color != White || connect.Difficulty != engine.Easy {
		t.Errorf("unexpected connect %+v", connect)
	}
	if !connect.Game.IsTurn || connect.Game.Thinking || len(connect.Game.Moves) != 0 {
		t.Errorf("white should move first: %+v", connect.Game)
	}
}

func TestMatchEngineReplies(t *testing.T) {
	c, _ := dialLocal(t, engine.Easy)
	c.join(White, 0)

	c.send(MessageMove{Move: "e2e4"})
	thinking := c.readGame()
	if !thinking.Thinking || thinking.IsTurn {
		t.Errorf("expected the engine to be thinking: %+v", thinking)
	}

	game := c.settle()
	if len(game.Moves) != 2 || game.Moves[0] != "e2e4" {
		t.Fatalf("expected the engine's reply, got %v", game.Moves)
	}
	if !game.IsTurn {
		t.Errorf("it should be the player's turn again")
	}
	if _, err := ReplayGame(game.StartFen, game.Moves); err != nil {
		t.Errorf("state does not replay: %v", err)
	}
}

func TestMatchEngineMovesFirstForBlack(t *testing.T) {
	c, _ := dialLocal(t, engine.Medium)
	connect := c.join(Black, engine.Medium)
	if connect.Color != Black || connect.Game.IsTurn {
		t.Errorf("unexpected connect %+v", connect)
	}

	game := c.settle()
	if len(game.Moves) != 1 || !game.IsTurn {
		t.Errorf("expected white's opening move, got %+v", game)
	}
}

func TestMatchUndo(t *testing.T) {
	c, _ := dialLocal(t, engine.Easy)
	c.join(White, 0)

	c.send(MessageAction{Action: ActionUndo})
	if msg := c.readError(); msg != errNothingToUndo.Error() {
		t.Errorf("got %q", msg)
	}

	c.send(MessageMove{Move: "d2d4"})
	c.settle()
	c.send(MessageAction{Action: ActionUndo})
	game := c.readGame()
	if len(game.Moves) != 0 || !game.IsTurn {
		t.Errorf("undo should take back both moves: %+v", game)
	}
}

func TestMatchRejects(t *testing.T) {
	c, _ := dialLocal(t, engine.Easy)

	c.send(MessageMove{Move: "e2e4"})
	if msg := c.readError(); msg != errNotJoined.Error() {
		t.Errorf("got %q", msg)
	}

	c.send(MessageJoin{Difficulty: 9})
	if msg := c.readError(); msg != errBadDifficulty.Error() {
		t.Errorf("got %q", msg)
	}

	c.join(White, 0)
	c.send(MessageMove{Move: "e2e5"})
	if msg := c.readError(); !strings.Contains(msg, "illegal move e2e5") {
		t.Errorf("got %q", msg)
	}

	c.send(MessageAction{Action: ActionDifficulty, Difficulty: 0})
	if msg := c.readError(); msg != errBadDifficulty.Error() {
		t.Errorf("got %q", msg)
	}

	c.send(MessageAction{Action: ActionFlip})
	if msg := c.readError(); !strings.Contains(msg, errUnknownMessage.Error()) {
		t.Errorf("got %q", msg)
	}
}

func TestMatchDifficultyAndNewGame(t *testing.T) {
	c, m := dialLocal(t, engine.Easy)
	c.join(White, 0)

	c.send(MessageAction{Action: ActionDifficulty, Difficulty: engine.Hard})
	if game := c.readGame(); game.Difficulty != engine.Hard {
		t.Errorf("difficulty is %d", game.Difficulty)
	}
	if m.AI.Difficulty() != engine.Hard {
		t.Errorf("engine difficulty is %d", m.AI.Difficulty())
	}

	c.send(MessageAction{Action: ActionNewGame})
	if game := c.readGame(); len(game.Moves) != 0 || !game.IsTurn {
		t.Errorf("unexpected new game %+v", game)
	}
}

func TestMatchResign(t *testing.T) {
	c, _ := dialLocal(t, engine.Easy)
	c.join(Black, 0)
	c.settle()

	c.send(MessageAction{Action: ActionResignYes})
	game := c.readGame()
	if game.Outcome != "1-0" || game.Method != "Resignation" || game.IsTurn {
		t.Errorf("unexpected result %+v", game)
	}

	c.send(MessageMove{Move: "e7e5"})
	if msg := c.readError(); msg != errGameOver.Error() {
		t.Errorf("got %q", msg)
	}
}

func TestMatchEndsWhenPlayerLeaves(t *testing.T) {
	conn, m := LocalMatch(engine.NewAI(engine.Easy), time.Second)
	conn.Close()

	select {
	case <-m.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("match did not end")
	}
}

func TestMatchClose(t *testing.T) {
	conn, m := LocalMatch(engine.NewAI(engine.Easy), time.Second)
	defer conn.Close()
	m.Close()
	<-m.Done()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		t.Errorf("expected the connection to be closed, got %v", err)
	}
}

func TestMatchEngineTimeoutFallsBack(t *testing.T) {
	conn, m := LocalMatch(engine.NewAI(engine.MaxDifficulty, engine.WithSeed(3)), time.Nanosecond)
	c := &testConn{t: t, conn: conn, scanner: bufio.NewScanner(conn)}
	t.Cleanup(func() {
		m.Close()
		conn.Close()
		<-m.Done()
	})
	c.join(White, 0)

	c.send(MessageMove{Move: "e2e4"})
	if game := c.readGame(); !game.Thinking {
		t.Fatalf("expected the engine to think: %+v", game)
	}
	if msg := c.readError(); !strings.Contains(msg, "gave up thinking") {
		t.Errorf("got %q", msg)
	}
	game := c.readGame()
	if len(game.Moves) != 2 || !game.IsTurn {
		t.Errorf("expected a fallback reply, got %+v", game)
	}
}

// brokenPosition panics on every call.
type brokenPosition struct {
	engine.Position
}

func TestFallbackMove(t *testing.T) {
	ai := engine.NewAI(engine.Easy, engine.WithSeed(1))
	if mv := fallbackMove(brokenPosition{}, ai); mv != nil {
		t.Errorf("expected no move from a broken position, got %s", mv)
	}

	game, err := ReplayGame("4k3/8/8/8/8/8/8/4K2R w - - 0 1", nil)
	if err != nil {
		t.Fatal(err)
	}
	mv := fallbackMove(board.FromGame(game), ai)
	if mv == nil {
		t.Fatal("expected a move")
	}

	m := NewMatch("fallback", ai, time.Second)
	m.Game = game
	if err := m.applyEngineMove(*mv); err != nil {
		t.Errorf("apply %s: %v", mv, err)
	}
	if len(m.Game.Moves()) != 1 {
		t.Errorf("move %s was not played", mv)
	}
	if err := m.applyEngineMove(engine.Move{From: engine.NewSquare(0, 0), To: engine.NewSquare(0, 7)}); err == nil {
		t.Error("expected an error for a move that is not legal")
	}
}
