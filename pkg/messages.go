package pkg

import (
	"encoding/json"
	"fmt"
)

type MessageType int

const (
	TypeMessageGame MessageType = iota
	TypeMessageMove
	TypeMessageTransport
	TypeMessageConnect
	TypeMessageJoin
	TypeMessageAction
	TypeMessageError
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageGame:
		return "TypeMessageGame"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	case TypeMessageJoin:
		return "TypeMessageJoin"
	case TypeMessageAction:
		return "TypeMessageAction"
	case TypeMessageError:
		return "TypeMessageError"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
	Encode() json.RawMessage
}

// Message types

// MessageTransport is the envelope written one per line on the wire.
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int
}

func (m MessageTransport) Type() MessageType {
	return TypeMessageTransport
}

func (m MessageTransport) Encode() json.RawMessage {
	return Encode(m)
}

// Wrap puts a message in its envelope.
func Wrap(m MessageInterface) MessageTransport {
	return MessageTransport{MsgType: m.Type(), Data: m.Encode()}
}

// Unwrap decodes the message carried by the envelope.
func (m MessageTransport) Unwrap() (MessageInterface, error) {
	switch m.MsgType {
	case TypeMessageGame:
		return unwrap[MessageGame](m)
	case TypeMessageMove:
		return unwrap[MessageMove](m)
	case TypeMessageConnect:
		return unwrap[MessageConnect](m)
	case TypeMessageJoin:
		return unwrap[MessageJoin](m)
	case TypeMessageAction:
		return unwrap[MessageAction](m)
	case TypeMessageError:
		return unwrap[MessageError](m)
	default:
		return nil, fmt.Errorf("unwrap: unknown message type %d", m.MsgType)
	}
}

func unwrap[T MessageInterface](m MessageTransport) (MessageInterface, error) {
	var msg T
	if err := Decode(m.Data, &msg); err != nil {
		return nil, fmt.Errorf("unwrap %s: %w", m.MsgType, err)
	}
	return msg, nil
}

// MessageJoin is the first message a client sends.
type MessageJoin struct {
	Name       string
	Color      PlayerColor
	Difficulty int
}

func (m MessageJoin) Type() MessageType {
	return TypeMessageJoin
}

func (m MessageJoin) Encode() json.RawMessage {
	return Encode(m)
}

// MessageMove carries a move in UCI notation.
type MessageMove struct {
	Move string
}

func (m MessageMove) Type() MessageType {
	return TypeMessageMove
}

func (m MessageMove) Encode() json.RawMessage {
	return Encode(m)
}

type MessageAction struct {
	Action     Action
	Difficulty int `json:",omitempty"`
}

func (m MessageAction) Type() MessageType {
	return TypeMessageAction
}

func (m MessageAction) Encode() json.RawMessage {
	return Encode(m)
}

// MessageGame is the full game state, sent after every change.
type MessageGame struct {
	StartFen   string
	Moves      []string
	IsTurn     bool
	Thinking   bool
	Difficulty int
	// Score is the engine's last evaluation, from White's point of view.
	Score   int
	Outcome string
	Method  string
}

func (m MessageGame) Type() MessageType {
	return TypeMessageGame
}

func (m MessageGame) Encode() json.RawMessage {
	return Encode(m)
}

type MessageConnect struct {
	MatchID    string
	Name       string
	Color      PlayerColor
	Difficulty int
	Game       MessageGame
}

func (m MessageConnect) Type() MessageType {
	return TypeMessageConnect
}

func (m MessageConnect) Encode() json.RawMessage {
	return Encode(m)
}

type MessageError struct {
	Msg string
}

func (m MessageError) Type() MessageType {
	return TypeMessageError
}

func (m MessageError) Encode() json.RawMessage {
	return Encode(m)
}
