package pkg

import (
	"bufio"
	"log"
	"net"
	"sync"
	"time"
)

type PlayerColor int

const (
	White PlayerColor = iota
	Black
	Viewer
	Unknown
)

func (pc PlayerColor) String() string {
	switch pc {
	case White:
		return "White"
	case Black:
		return "Black"
	case Viewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

func (pc PlayerColor) Opponent() PlayerColor {
	switch pc {
	case White:
		return Black
	case Black:
		return White
	default:
		return pc
	}
}

const writeTimeout = 10 * time.Second

type Player struct {
	Conn  net.Conn
	Color PlayerColor
	Out   chan MessageInterface
	Id    int
	Name  string

	// Done is closed once the connection stops delivering messages.
	Done chan struct{}

	closed chan struct{}
	once   sync.Once
}

func NewPlayer(conn net.Conn) *Player {
	Out := make(chan MessageInterface, ConnQueueSize)

	p := &Player{
		Conn:   conn,
		Out:    Out,
		Done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	return p
}

// HandleRead forwards every envelope read from the connection to in, tagged
// with the player's id. Lines that do not decode are logged and skipped.
func (p *Player) HandleRead(in chan<- MessageTransport) {
	defer close(p.Done)
	scanner := bufio.NewScanner(p.Conn)
	for scanner.Scan() {
		var messageTransport MessageTransport
		if err := Decode(scanner.Bytes(), &messageTransport); err != nil {
			log.Printf("Player %d sent garbage: %v", p.Id, err)
			continue
		}
		messageTransport.PlayerId = p.Id
		select {
		case in <- messageTransport:
		case <-p.closed:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Player %d read failed: %v", p.Id, err)
	}
}

func (p *Player) HandleWrite() {
	for message := range p.Out {
		if err := writeMessage(p.Conn, message); err != nil {
			log.Printf("Failed to write: %s Error: %v", message.Type(), err)
			p.Conn.Close()
		}
	}
}

func writeMessage(conn net.Conn, message MessageInterface) error {
	b := Encode(Wrap(message))
	b = append(b, '\n')
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := conn.Write(b)
	return err
}

// Send queues a message without blocking; a player too slow to drain its
// queue loses the message.
func (p *Player) Send(m MessageInterface) {
	select {
	case p.Out <- m:
	default:
		log.Printf("Player %d queue full, dropped %s", p.Id, m.Type())
	}
}

func (p *Player) Disconnect() {
	p.once.Do(func() {
		close(p.closed)
		p.Conn.Close()
		close(p.Out)
	})
}
