package pkg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/notnil/chess"

	"github.com/yousufyasser2005/Youstore/pkg/board"
)

func NewGame() *chess.Game {
	return chess.NewGame(chess.UseNotation(chess.UCINotation{}))
}

func GameFromFEN(gamefen string) (*chess.Game, error) {
	fen, err := chess.FEN(gamefen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrBadFEN, err)
	}
	return chess.NewGame(fen, chess.UseNotation(chess.UCINotation{})), nil
}

// ReplayGame rebuilds a game from its starting position and UCI moves, so the
// move history survives the trip over the wire.
func ReplayGame(startFen string, moves []string) (*chess.Game, error) {
	game := NewGame()
	if startFen != "" {
		var err error
		if game, err = GameFromFEN(startFen); err != nil {
			return nil, err
		}
	}
	for i, m := range moves {
		if err := game.MoveStr(m); err != nil {
			return nil, fmt.Errorf("replay move %d %q: %w", i+1, m, err)
		}
	}
	return game, nil
}

// MoveStrings lists the game's moves in UCI notation.
func MoveStrings(game *chess.Game) []string {
	moves := game.Moves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

func Encode(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

func Decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// GameResult returns the game's outcome and how it was reached. Games that
// notnil/chess leaves running although neither side can mate are drawn by
// insufficient material.
func GameResult(game *chess.Game) (chess.Outcome, chess.Method) {
	if outcome := game.Outcome(); outcome != chess.NoOutcome {
		return outcome, game.Method()
	}
	if board.New(game.Position()).IsInsufficientMaterial() {
		return chess.Draw, chess.InsufficientMaterial
	}
	return chess.NoOutcome, chess.NoMethod
}

func MethodName(method chess.Method) string {
	switch method {
	case chess.Checkmate:
		return "Checkmate"
	case chess.Resignation:
		return "Resignation"
	case chess.DrawOffer:
		return "Draw offer"
	case chess.Stalemate:
		return "Stalemate"
	case chess.ThreefoldRepetition:
		return "Threefold repetition"
	case chess.FivefoldRepetition:
		return "Fivefold repetition"
	case chess.FiftyMoveRule:
		return "Fifty move rule"
	case chess.SeventyFiveMoveRule:
		return "Seventy-five move rule"
	case chess.InsufficientMaterial:
		return "Insufficient material"
	default:
		return ""
	}
}
