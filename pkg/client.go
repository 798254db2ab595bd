package pkg

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
	"github.com/yousufyasser2005/Youstore/pkg/gui"
)

const (
	pageMenu   = "menu"
	pageGame   = "game"
	pageDialog = "dialog"
	meterWidth = 24
)

var difficultyNames = []string{"Easy", "Medium", "Hard"}

// Client is the terminal UI. It speaks the match protocol over Conn, whether
// the match runs on a server or in-process.
type Client struct {
	App    *tview.Application
	Pages  *tview.Pages
	Board  *tview.Table
	Status *tview.TextView
	Moves  *tview.TextView
	Meter  *tview.TextView
	Info   *tview.TextView
	Menu   *tview.Form
	Layout *tview.Grid

	Conn  net.Conn
	Out   chan MessageInterface
	Theme gui.Theme
	Clock *Clock

	Name       string
	Color      PlayerColor
	Difficulty int
	MatchID    string

	// Everything below is only touched on the tview event goroutine.
	view     *gui.View
	state    MessageGame
	gameOver bool
}

func NewClient(theme gui.Theme) *Client {
	app := tview.NewApplication()

	cl := &Client{
		App:        app,
		Pages:      tview.NewPages(),
		Board:      tview.NewTable(),
		Status:     tview.NewTextView().SetDynamicColors(true),
		Moves:      tview.NewTextView(),
		Meter:      tview.NewTextView().SetDynamicColors(true),
		Info:       tview.NewTextView().SetDynamicColors(true),
		Out:        make(chan MessageInterface, ConnQueueSize),
		Theme:      theme,
		Clock:      NewClock(),
		Color:      White,
		Difficulty: engine.DefaultDifficulty,
		view:       gui.NewView(NewGame()),
	}
	cl.Moves.SetBorder(true).SetTitle(" Moves ")
	cl.Clock.OnTick = func(time.Duration) {
		app.QueueUpdateDraw(cl.render)
	}

	cl.initBoard()
	cl.initLayout()
	cl.Pages.AddPage(pageGame, cl.Layout, true, false)
	app.SetRoot(cl.Pages, true)
	app.SetInputCapture(cl.handleKey)
	return cl
}

func (cl *Client) initLayout() {
	undoBtn := tview.NewButton(string(ActionUndo)).SetSelectedFunc(func() {
		cl.send(MessageAction{Action: ActionUndo})
	})
	newBtn := tview.NewButton(string(ActionNewGame)).SetSelectedFunc(cl.confirmNewGame)
	resignBtn := tview.NewButton(string(ActionResignPrompt)).SetSelectedFunc(cl.confirmResign)
	flipBtn := tview.NewButton(string(ActionFlip)).SetSelectedFunc(func() {
		cl.view.Flip = !cl.view.Flip
		cl.render()
	})

	buttons := tview.NewFlex().
		AddItem(undoBtn, 0, 1, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(newBtn, 0, 1, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(resignBtn, 0, 1, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flipBtn, 0, 1, false)

	help := tview.NewTextView().SetText("u undo  n new game  r resign  f flip  1-5 level  q quit")

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cl.Info, 3, 0, false).
		AddItem(cl.Meter, 2, 0, false).
		AddItem(cl.Moves, 0, 1, false).
		AddItem(buttons, 1, 0, false)

	cl.Layout = tview.NewGrid().
		SetRows(-1, 2, gui.BoardRows, 1, -1).
		SetColumns(-1, 30, 2, 40, -1).
		AddItem(tview.NewBox(), 0, 0, 1, 5, 0, 0, false).
		AddItem(cl.Status, 1, 1, 1, 3, 0, 0, false).
		AddItem(cl.Board, 2, 1, 1, 1, 0, 0, true).
		AddItem(side, 2, 3, 1, 1, 0, 0, false).
		AddItem(help, 3, 1, 1, 3, 0, 0, false).
		AddItem(tview.NewBox(), 4, 0, 1, 5, 0, 0, false)
}

func (cl *Client) initMenu() {
	color := 0
	if cl.Color == Black {
		color = 1
	}
	difficulty := cl.Difficulty - 1
	if difficulty >= len(difficultyNames) {
		difficulty = len(difficultyNames) - 1
	} else if difficulty < 0 {
		difficulty = engine.DefaultDifficulty - 1
	}

	cl.Menu = tview.NewForm().
		AddInputField("Name", cl.Name, 20, nil, func(text string) { cl.Name = text }).
		AddDropDown("Play as", []string{White.String(), Black.String()}, color, func(_ string, i int) {
			cl.Color = PlayerColor(i)
		}).
		AddDropDown("Difficulty", difficultyNames, difficulty, func(_ string, i int) {
			cl.Difficulty = i + 1
		}).
		AddButton("Play", func() {
			cl.Join()
		}).
		AddButton("Quit", func() {
			cl.Stop()
		})
	cl.Menu.SetBorder(true).SetTitle(" chessterm ")
}

func (cl *Client) initBoard() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(0, 1).SetSelectedFunc(func(row, col int) {
		sq, ok := gui.CellSquare(row, col, cl.view.Flip)
		if ok {
			cl.selectSquare(sq)
		}
	})
	cl.render()
}

// selectSquare handles a click on the board: the first picks a piece, the
// second a destination.
func (cl *Client) selectSquare(sq chess.Square) {
	v := cl.view
	if !cl.state.IsTurn {
		v.Msg = "Wait for your turn"
		cl.render()
		return
	}

	switch {
	case v.Selected == gui.NoSquare:
		p := v.Game.Position().Board().Piece(sq)
		if p == chess.NoPiece || p.Color() != v.Human {
			return
		}
		v.Selected = sq
	case v.Selected == sq:
		v.Selected = gui.NoSquare
	default:
		moves := v.MovesBetween(v.Selected, sq)
		switch len(moves) {
		case 0:
			p := v.Game.Position().Board().Piece(sq)
			if p != chess.NoPiece && p.Color() == v.Human {
				v.Selected = sq
			} else {
				log.Printf("invalid move %s%s", v.Selected, sq)
				v.Msg = fmt.Sprintf("%s%s is not legal", v.Selected, sq)
				v.Selected = gui.NoSquare
			}
		case 1:
			cl.sendMove(moves[0].String())
		default:
			cl.choosePromotion(v.Selected, sq)
		}
	}
	cl.render()
}

func (cl *Client) sendMove(move string) {
	log.Printf("Move: %s", move)
	cl.view.Selected = gui.NoSquare
	cl.view.Msg = ""
	cl.state.IsTurn = false
	cl.send(MessageMove{Move: move})
}

func (cl *Client) choosePromotion(s1, s2 chess.Square) {
	names := map[engine.PieceType]string{engine.Queen: "Queen", engine.Rook: "Rook", engine.Bishop: "Bishop", engine.Knight: "Knight"}
	pieces := make(map[string]engine.PieceType, len(gui.PromotionPieces))
	labels := make([]string, len(gui.PromotionPieces))
	for i, pt := range gui.PromotionPieces {
		labels[i] = names[pt]
		pieces[labels[i]] = pt
	}
	cl.dialog("Promote to", labels, func(label string) {
		if m := cl.view.Promotion(s1, s2, pieces[label]); m != nil {
			cl.sendMove(m.String())
		}
	})
}

func (cl *Client) confirmResign() {
	if cl.gameOver {
		return
	}
	cl.dialog("Resign?", []string{string(ActionResignYes), string(ActionResignNo)}, func(label string) {
		if Action(label) == ActionResignYes {
			cl.send(MessageAction{Action: ActionResignYes})
		}
	})
}

func (cl *Client) confirmNewGame() {
	cl.dialog(string(ActionNewGamePrompt), []string{string(ActionResignYes), string(ActionResignNo)}, func(label string) {
		if Action(label) == ActionResignYes {
			cl.send(MessageAction{Action: ActionNewGame})
		}
	})
}

// dialog shows a modal with one button per label. done runs with the chosen
// label after the modal is gone.
func (cl *Client) dialog(text string, labels []string, done func(label string)) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(labels).
		SetDoneFunc(func(_ int, label string) {
			cl.Pages.RemovePage(pageDialog)
			cl.App.SetFocus(cl.Board)
			if label != "" {
				done(label)
			}
		})
	cl.Pages.AddPage(pageDialog, modal, false, true)
	cl.App.SetFocus(modal)
}

func (cl *Client) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if cl.Pages.HasPage(pageDialog) {
		return event
	}
	if name, _ := cl.Pages.GetFrontPage(); name != pageGame {
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		cl.view.Selected = gui.NoSquare
		cl.render()
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch r := event.Rune(); r {
	case 'u':
		cl.send(MessageAction{Action: ActionUndo})
	case 'n':
		cl.confirmNewGame()
	case 'r':
		cl.confirmResign()
	case 'f':
		cl.view.Flip = !cl.view.Flip
		cl.render()
	case 'q':
		cl.Stop()
	case '1', '2', '3', '4', '5':
		cl.send(MessageAction{Action: ActionDifficulty, Difficulty: int(r - '0')})
	default:
		return event
	}
	return nil
}

func (cl *Client) Connect(addr string) error {
	log.Printf("Connecting to %s", addr)
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	cl.Conn = conn
	return nil
}

// Join asks the match to start a game with the menu's choices.
func (cl *Client) Join() {
	cl.send(MessageJoin{Name: cl.Name, Color: cl.Color, Difficulty: cl.Difficulty})
	cl.Pages.SwitchToPage(pageGame)
	cl.App.SetFocus(cl.Board)
}

func (cl *Client) send(m MessageInterface) {
	select {
	case cl.Out <- m:
	default:
		log.Printf("Out queue full, dropped %s", m.Type())
	}
}

func (cl *Client) HandleWrite() {
	for command := range cl.Out {
		if err := writeMessage(cl.Conn, command); err != nil {
			log.Printf("Failed to send %s: %v", command.Type(), err)
			cl.App.QueueUpdateDraw(func() {
				cl.view.Msg = "Connection lost"
				cl.render()
			})
			return
		}
		log.Printf("Send a msg type :%s", command.Type())
	}
}

func (cl *Client) HandleRead() {
	scanner := bufio.NewScanner(cl.Conn)
	for scanner.Scan() {
		var transport MessageTransport
		if err := Decode(scanner.Bytes(), &transport); err != nil {
			log.Printf("Bad message: %v", err)
			continue
		}
		msg, err := transport.Unwrap()
		if err != nil {
			log.Printf("Bad message: %v", err)
			continue
		}
		cl.App.QueueUpdateDraw(func() {
			cl.handle(msg)
		})
	}
	log.Printf("Connection closed")
	cl.App.QueueUpdateDraw(func() {
		cl.view.Msg = "Disconnected from the match"
		cl.state.IsTurn = false
		cl.render()
	})
}

func (cl *Client) handle(msg MessageInterface) {
	switch msg := msg.(type) {
	case MessageConnect:
		cl.MatchID = msg.MatchID
		cl.Color = msg.Color
		cl.view.Human = nativeColor(msg.Color)
		cl.view.Flip = msg.Color == Black
		cl.applyGame(msg.Game)
	case MessageGame:
		cl.applyGame(msg)
	case MessageError:
		cl.view.Msg = msg.Msg
	default:
		log.Printf("Received unexpected %s", msg.Type())
	}
	cl.render()
}

func (cl *Client) applyGame(msg MessageGame) {
	game, err := ReplayGame(msg.StartFen, msg.Moves)
	if err != nil {
		log.Printf("Bad game state: %v", err)
		cl.view.Msg = "Received a corrupt game"
		return
	}

	wasOver := cl.gameOver
	cl.state = msg
	cl.Difficulty = msg.Difficulty
	cl.view.Game = game
	cl.view.Selected = gui.NoSquare
	cl.view.Score = msg.Score
	cl.view.Difficulty = msg.Difficulty

	if msg.Thinking && !cl.view.Thinking {
		cl.Clock.Start()
	} else if !msg.Thinking && cl.view.Thinking {
		cl.Clock.Stop()
	}
	cl.view.Thinking = msg.Thinking

	cl.gameOver = chess.Outcome(msg.Outcome) != chess.NoOutcome && msg.Outcome != ""
	if cl.gameOver && !wasOver {
		cl.showResult(chess.Outcome(msg.Outcome), msg.Method)
	}
}

func (cl *Client) showResult(outcome chess.Outcome, method string) {
	text, won, draw := gui.Result(outcome, method, cl.view.Human)
	verdict := ActionLose
	switch {
	case won:
		verdict = ActionWin
	case draw:
		verdict = ActionDraw
	}
	cl.dialog(fmt.Sprintf("%s\n\n%s", text, verdict), []string{string(ActionNewGame), "Close"}, func(label string) {
		if Action(label) == ActionNewGame {
			cl.send(MessageAction{Action: ActionNewGame})
		}
	})
}

// render redraws every widget from the current view.
func (cl *Client) render() {
	v := cl.view
	v.ThinkTime = cl.Clock.String()
	gui.DrawBoard(cl.Board, v, cl.Theme)
	cl.Status.SetText(gui.Status(v, cl.Theme))
	cl.Moves.SetText(gui.MoveList(v.Game, gui.MoveRows))
	cl.Meter.SetText(gui.ScoreMeter(v.Score, meterWidth, cl.Theme) + "\n" + gui.ScoreText(v.Score, cl.Theme))

	level := "?"
	if v.Difficulty >= engine.Easy && v.Difficulty <= len(difficultyNames) {
		level = difficultyNames[v.Difficulty-1]
	} else if v.Difficulty > len(difficultyNames) {
		level = fmt.Sprintf("Level %d", v.Difficulty)
	}
	info := []string{
		fmt.Sprintf("You play %s vs engine (%s)", cl.Color, level),
		"Material: " + gui.Advantage(v.Game.Position().Board()),
	}
	if cl.MatchID != "" {
		info = append(info, "Match: "+cl.MatchID)
	}
	cl.Info.SetText(strings.Join(info, "\n"))
}

// Run shows the menu, built from the client's current settings, and blocks
// until the UI stops.
func (cl *Client) Run() error {
	cl.initMenu()
	cl.Pages.AddPage(pageMenu, cl.Menu, true, true)
	return cl.App.EnableMouse(true).Run()
}

func (cl *Client) Stop() {
	cl.App.Stop()
}

// Disconnect closes the connection to the match.
func (cl *Client) Disconnect() {
	if cl.Conn != nil {
		cl.Conn.Close()
	}
}
