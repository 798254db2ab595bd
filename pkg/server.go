package pkg

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

const (
	MessageQueueSize = 20
	ConnQueueSize    = 10
)

// ServerConfig holds what every match the server creates shares.
type ServerConfig struct {
	Difficulty   int
	Seed         int64
	ThinkTimeout time.Duration
	IdleTimeout  time.Duration
}

type Server struct {
	Config ServerConfig

	mu      sync.Mutex
	Matches map[string]*Match
}

func NewServer(cfg ServerConfig) *Server {
	return &Server{
		Config:  cfg,
		Matches: make(map[string]*Match),
	}
}

// NewAI builds an engine at the configured difficulty. A non-zero seed makes
// every match's engine replay the same random choices.
func (s *Server) NewAI() *engine.AI {
	var opts []engine.Option
	if s.Config.Seed != 0 {
		opts = append(opts, engine.WithSeed(s.Config.Seed))
	}
	return engine.NewAI(s.Config.Difficulty, opts...)
}

// Serve accepts connections until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("Failed to accept: %v", err)
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return err
		}
		s.HandleConn(conn)
	}
}

// HandleConn starts a new match for conn and returns it.
func (s *Server) HandleConn(conn net.Conn) *Match {
	s.mu.Lock()
	id := s.newMatchID()
	m := NewMatch(id, s.NewAI(), s.Config.ThinkTimeout)
	s.Matches[id] = m
	s.mu.Unlock()

	m.AddConn(conn)
	log.Printf("Match %s: new connection from %s", id, conn.RemoteAddr())

	go func() {
		m.Run()
		s.mu.Lock()
		delete(s.Matches, id)
		s.mu.Unlock()
		log.Printf("Match %s: closed", id)
	}()
	return m
}

// newMatchID must be called with s.mu held.
func (s *Server) newMatchID() string {
	for {
		id := petname.Generate(2, "-")
		if _, ok := s.Matches[id]; !ok {
			return id
		}
	}
}

func (s *Server) Match(id string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Matches[id]
	return m, ok
}

func (s *Server) NumMatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Matches)
}

// CleanIdleMatches closes matches whose player has been silent for longer
// than the idle timeout, checking every interval until ctx is done.
func (s *Server) CleanIdleMatches(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			s.closeIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) closeIdle() {
	s.mu.Lock()
	var idle []*Match
	for _, m := range s.Matches {
		if m.Idle(s.Config.IdleTimeout) {
			idle = append(idle, m)
		}
	}
	s.mu.Unlock()

	for _, m := range idle {
		log.Printf("Match %s: idle, closing", m.ID)
		m.Close()
	}
}

// Shutdown closes every match.
func (s *Server) Shutdown() {
	s.mu.Lock()
	matches := make([]*Match, 0, len(s.Matches))
	for _, m := range s.Matches {
		matches = append(matches, m)
	}
	s.mu.Unlock()

	for _, m := range matches {
		m.Close()
	}
}

// LocalMatch runs a match in-process and returns the client end of the
// connection to it.
func LocalMatch(ai *engine.AI, thinkTimeout time.Duration) (net.Conn, *Match) {
	clientConn, serverConn := net.Pipe()
	m := NewMatch("local", ai, thinkTimeout)
	m.AddConn(serverConn)
	go m.Run()
	return clientConn, m
}
