package pkg

import (
	"reflect"
	"testing"
)

func TestWrapUnwrap(t *testing.T) {
	msgs := []MessageInterface{
		MessageJoin{Name: "ada", Color: Black, Difficulty: 3},
		MessageMove{Move: "e7e8q"},
		MessageAction{Action: ActionDifficulty, Difficulty: 4},
		MessageError{Msg: "nope"},
		MessageConnect{MatchID: "brave-otter", Color: White, Game: MessageGame{Moves: []string{"e2e4"}, Outcome: "*"}},
	}
	for _, want := range msgs {
		var transport MessageTransport
		if err := Decode(Encode(Wrap(want)), &transport); err != nil {
			t.Fatal(err)
		}
		if transport.MsgType != want.Type() {
			t.Errorf("envelope type %s, want %s", transport.MsgType, want.Type())
		}
		got, err := transport.Unwrap()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v, want %#v", got, want)
		}
	}
}

func TestUnwrapErrors(t *testing.T) {
	if _, err := (MessageTransport{MsgType: TypeMessageTransport}).Unwrap(); err == nil {
		t.Error("a nested envelope should not unwrap")
	}
	bad := MessageTransport{MsgType: TypeMessageMove, Data: []byte(`{"Move": 5}`)}
	if _, err := bad.Unwrap(); err == nil {
		t.Error("expected a decode error")
	}
}

func TestActionRemote(t *testing.T) {
	for _, a := range []Action{ActionUndo, ActionNewGame, ActionResignYes, ActionDifficulty} {
		if !a.Remote() {
			t.Errorf("%s should be sent to the match", a)
		}
	}
	for _, a := range []Action{ActionFlip, ActionExit, ActionResignPrompt, ActionResignNo} {
		if a.Remote() {
			t.Errorf("%s is local to the client", a)
		}
	}
}

func TestPlayerColorOpponent(t *testing.T) {
	if White.Opponent() != Black || Black.Opponent() != White || Viewer.Opponent() != Viewer {
		t.Error("wrong opponents")
	}
}
