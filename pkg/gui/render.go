package gui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

const (
	numOfSquaresInRow = 8
	// BoardRows counts the eight ranks plus the file labels.
	BoardRows = numOfSquaresInRow + 1
	MoveRows  = 10
)

// CellSquare maps a board table cell to its square. Column 0 and the last row
// hold the labels.
func CellSquare(row, col int, flip bool) (chess.Square, bool) {
	if row < 0 || row >= numOfSquaresInRow || col < 1 || col > numOfSquaresInRow {
		return NoSquare, false
	}
	rank, file := numOfSquaresInRow-1-row, col-1
	if flip {
		rank, file = row, numOfSquaresInRow-1-file
	}
	return chess.Square(rank*8 + file), true
}

// SquareCell is the inverse of CellSquare.
func SquareCell(sq chess.Square, flip bool) (row, col int) {
	rank, file := int(sq.Rank()), int(sq.File())
	if flip {
		return rank, numOfSquaresInRow - file
	}
	return numOfSquaresInRow - 1 - rank, file + 1
}

// squareBg returns the theme's color corresponding to the square
func squareBg(sq chess.Square, t Theme) tcell.Color {
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return t.SquareDark
	}
	return t.SquareLight
}

// stylePiece picks the piece's foreground from the theme
func stylePiece(p chess.Piece, t Theme) tcell.Color {
	if p.Color() == chess.White {
		return t.White
	}
	return t.Black
}

// DrawBoard fills table with the position, highlighting the last move, the
// selection with its legal targets and a king in check.
func DrawBoard(table *tview.Table, v *View, t Theme) {
	pos := v.Game.Position()
	board := pos.Board()
	targets := v.Targets()
	last := v.LastMove()
	check := v.InCheck()

	for row := 0; row < numOfSquaresInRow; row++ {
		sq, _ := CellSquare(row, 1, v.Flip)
		table.SetCell(row, 0, tview.NewTableCell(sq.Rank().String()).
			SetTextColor(t.Rank).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))

		for col := 1; col <= numOfSquaresInRow; col++ {
			sq, _ := CellSquare(row, col, v.Flip)
			p := board.Piece(sq)

			bg := squareBg(sq, t)
			switch {
			case sq == v.Selected:
				bg = t.SquareSelect
			case targets[sq]:
				bg = t.SquareHint
			case last != nil && (last.S1() == sq || last.S2() == sq):
				bg = t.SquareHigh
			}
			if check && p.Type() == chess.King && p.Color() == pos.Turn() {
				bg = t.SquareCheck
			}

			text := "  "
			if p != chess.NoPiece {
				text = " " + p.String()
			}
			table.SetCell(row, col, tview.NewTableCell(text+" ").
				SetTextColor(stylePiece(p, t)).
				SetBackgroundColor(bg).
				SetAlign(tview.AlignCenter))
		}
	}

	table.SetCell(numOfSquaresInRow, 0, tview.NewTableCell("").SetSelectable(false))
	for col := 1; col <= numOfSquaresInRow; col++ {
		sq, _ := CellSquare(0, col, v.Flip)
		table.SetCell(numOfSquaresInRow, col, tview.NewTableCell(sq.File().String()).
			SetTextColor(t.File).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
}

// gameMove is used to store intermediate data in moveIdx
type gameMove = struct {
	index string
	white string
	black string
}

// gameMoves pairs the game's moves up in algebraic notation
func gameMoves(game *chess.Game) []gameMove {
	positions := game.Positions()
	pairs := make([]gameMove, 0)
	var gm gameMove

	for i, move := range game.Moves() {
		txt := chess.AlgebraicNotation{}.Encode(positions[i], move)
		if i%2 == 0 {
			gm = gameMove{index: fmt.Sprintf("%v.", (i/2)+1), white: txt}
			continue
		}
		gm.black = txt
		pairs = append(pairs, gm)
		gm = gameMove{}
	}
	if gm.index != "" {
		pairs = append(pairs, gm)
	}
	return pairs
}

// MoveList renders the most recent move pairs, at most rows of them.
func MoveList(game *chess.Game, rows int) string {
	pairs := gameMoves(game)
	if len(pairs) > rows {
		pairs = pairs[len(pairs)-rows:]
	}
	var b strings.Builder
	for _, gm := range pairs {
		fmt.Fprintf(&b, "%-4v %-7v %-7v\n", gm.index, gm.white, gm.black)
	}
	return b.String()
}

// WinProb converts a centipawn score into White's expected result
func WinProb(cp int) float64 {
	return 1 / (1 + math.Pow(10, -float64(cp)/400))
}

// RoundNearest rounds v to the nearest multiple of to
func RoundNearest(v, to float64) float64 {
	return math.Round(v/to) * to
}

// ScoreMeter draws a horizontal bar of width cells filled in proportion to
// White's winning chances.
func ScoreMeter(cp, width int, t Theme) string {
	prob := RoundNearest(WinProb(cp)*100, 5)
	fill := int(math.Round(prob / 100 * float64(width)))

	color := t.MeterNeutral
	switch {
	case prob > 50:
		color = t.MeterWin
	case prob < 50:
		color = t.MeterLose
	}

	return tag(color) + strings.Repeat("█", fill) + tag(t.MeterBase) + strings.Repeat("█", width-fill) + "[-]"
}

// ScoreText formats the evaluation for the score panel
func ScoreText(cp int, t Theme) string {
	return fmt.Sprintf("%scp=%d, white %.1f%%[-]", tag(t.Score), cp, WinProb(cp)*100)
}

// Material returns each side's material in centipawns, kings excluded
func Material(board *chess.Board) (white, black int) {
	for _, p := range board.SquareMap() {
		var v engine.Score
		switch p.Type() {
		case chess.Pawn:
			v = engine.PieceValue(engine.Pawn)
		case chess.Knight:
			v = engine.PieceValue(engine.Knight)
		case chess.Bishop:
			v = engine.PieceValue(engine.Bishop)
		case chess.Rook:
			v = engine.PieceValue(engine.Rook)
		case chess.Queen:
			v = engine.PieceValue(engine.Queen)
		}
		if p.Color() == chess.White {
			white += int(v)
		} else {
			black += int(v)
		}
	}
	return white, black
}

// Advantage describes who is ahead on material, e.g. "White +3".
func Advantage(board *chess.Board) string {
	white, black := Material(board)
	switch diff := (white - black) / 100; {
	case diff > 0:
		return fmt.Sprintf("White +%d", diff)
	case diff < 0:
		return fmt.Sprintf("Black +%d", -diff)
	default:
		return "Even"
	}
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "Black"
	}
	return "White"
}

// Status is the line above the board: whose move it is, check and whether
// the engine is busy.
func Status(v *View, t Theme) string {
	turn := v.Game.Position().Turn()
	var b strings.Builder
	fmt.Fprintf(&b, "%s to move", colorName(turn))
	if turn != v.Human {
		b.WriteString(" (vs engine)")
	}
	if v.InCheck() {
		fmt.Fprintf(&b, " %sCHECK![-]", tag(t.Check))
	}
	if v.Thinking {
		fmt.Fprintf(&b, "  Engine is thinking... %s", v.ThinkTime)
	}
	if v.Msg != "" {
		fmt.Fprintf(&b, "\n%s%s[-]", tag(t.Msg), tview.Escape(v.Msg))
	}
	return b.String()
}

// Result describes a finished game from the human's side. won is true when
// the human won and draw when nobody did.
func Result(outcome chess.Outcome, method string, human chess.Color) (text string, won, draw bool) {
	switch outcome {
	case chess.WhiteWon, chess.BlackWon:
		winner := chess.White
		if outcome == chess.BlackWon {
			winner = chess.Black
		}
		won = winner == human
		text = fmt.Sprintf("%s. %s wins!", method, colorName(winner))
	case chess.Draw:
		draw = true
		text = fmt.Sprintf("Draw by %s.", strings.ToLower(method))
	default:
		return "", false, false
	}
	return text, won, draw
}
