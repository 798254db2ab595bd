package pkg

type Action string

const (
	ActionUndo          Action = "Undo"
	ActionNewGame       Action = "New Game"
	ActionNewGamePrompt Action = "New Game?"
	ActionResignPrompt  Action = "Resign"
	ActionResignYes     Action = "Yes"
	ActionResignNo      Action = "No"
	ActionDifficulty    Action = "Difficulty"
	ActionFlip          Action = "Flip"
	ActionExit          Action = "Exit"
	ActionWin           Action = "Win"
	ActionLose          Action = "Lose"
	ActionDraw          Action = "Draw"
)

// Actions a client may send in a MessageAction.
func (a Action) Remote() bool {
	switch a {
	case ActionUndo, ActionNewGame, ActionResignYes, ActionDifficulty:
		return true
	default:
		return false
	}
}
