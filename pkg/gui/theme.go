package gui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Theme colours every part of the game screen. Stick to the xterm 256 colour
// palette so themes look the same in every terminal.
type Theme struct {
	Name string

	SquareDark, SquareLight tcell.Color
	// Highlights: last move, selected piece, its targets, a king in check.
	SquareHigh, SquareSelect, SquareHint, SquareCheck tcell.Color

	White, Black tcell.Color
	Rank, File   tcell.Color

	MeterBase, MeterNeutral, MeterWin, MeterLose tcell.Color

	Msg, Score, Check tcell.Color
}

// tag renders c as a tview color tag
func tag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

var ThemeBasic = Theme{
	Name:         "basic",
	SquareDark:   tcell.Color188,
	SquareLight:  tcell.Color230,
	SquareHigh:   tcell.Color226,
	SquareSelect: tcell.Color117,
	SquareHint:   tcell.Color223,
	SquareCheck:  tcell.Color218,
	White:        tcell.Color232,
	Black:        tcell.Color232,
	Rank:         tcell.Color247,
	File:         tcell.Color247,
	MeterBase:    tcell.Color240,
	MeterNeutral: tcell.Color45,
	MeterWin:     tcell.Color122,
	MeterLose:    tcell.Color167,
	Msg:          tcell.Color160,
	Score:        tcell.Color247,
	Check:        tcell.Color196,
}

// ThemeDark suits dark terminals
var ThemeDark = Theme{
	Name:         "dark",
	SquareDark:   tcell.Color94,
	SquareLight:  tcell.Color137,
	SquareHigh:   tcell.Color100,
	SquareSelect: tcell.Color31,
	SquareHint:   tcell.Color65,
	SquareCheck:  tcell.Color124,
	White:        tcell.Color231,
	Black:        tcell.Color16,
	Rank:         tcell.Color244,
	File:         tcell.Color244,
	MeterBase:    tcell.Color238,
	MeterNeutral: tcell.Color39,
	MeterWin:     tcell.Color78,
	MeterLose:    tcell.Color167,
	Msg:          tcell.Color203,
	Score:        tcell.Color250,
	Check:        tcell.Color203,
}

var themes = map[string]Theme{
	ThemeBasic.Name: ThemeBasic,
	ThemeDark.Name:  ThemeDark,
}

// ThemeNames lists the built-in themes in order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ThemeByName(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("theme: no theme %q, pick one of %v", name, ThemeNames())
	}
	return t, nil
}
