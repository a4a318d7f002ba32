package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"renju-local/board"
	"renju-local/rules"
	"renju-local/sgf"
	"renju-local/types"
)

// preview caches a replayed record.
type preview struct {
	board   board.Board
	outcome types.Outcome
	err     error
}

// HistoryBrowserUI provides a screen for browsing saved game records.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	dir      string
	rules    rules.RuleSet
	games    []sgf.GameInfo
	boards   map[int]preview
	selected int
	onDone   func()
}

// NewHistoryBrowser creates a history browser over the records in dir.
// Previews are replayed through rs.
func NewHistoryBrowser(dir string, rs rules.RuleSet, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:    dir,
		rules:  rs,
		onDone: onDone,
		boards: make(map[int]preview),
	}

	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(Palette.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(Palette.ButtonText).
		Background(Palette.ButtonFocus))

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]d[-] delete  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 38, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.boards = make(map[int]preview)
	hb.loadGames()
}

func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0

	games, err := sgf.ListGames(hb.dir)
	if err != nil || len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	hb.games = games
	for _, g := range games {
		result := g.Result
		if result == "" || result == "?" {
			result = "..."
		}
		label := fmt.Sprintf("%s  %3d moves  %s", g.Date, g.MoveCount, result)
		hb.gameList.AddItem(label, "", 0, nil)
	}
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		}
	}
	return event
}

func (hb *HistoryBrowserUI) deleteSelected() {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return
	}
	os.Remove(hb.games[hb.selected].FilePath)
	hb.Refresh()
}

func (hb *HistoryBrowserUI) load(i int) preview {
	if pv, ok := hb.boards[i]; ok {
		return pv
	}
	b, outcome, err := sgf.ReplayToEnd(hb.games[i].FilePath, hb.rules)
	pv := preview{board: b, outcome: outcome, err: err}
	hb.boards[i] = pv
	return pv
}

// drawPreview renders a mini board and the game's metadata.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return x, y, width, height
	}
	game := hb.games[hb.selected]
	pv := hb.load(hb.selected)

	startX := x + 2
	startY := y + 1
	if width < board.Size*2+4 || height < board.Size+8 {
		return x, y, width, height
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			ch := '·'
			style := emptyStyle
			switch pv.board.Get(types.Pos{Row: row, Col: col}) {
			case types.Black:
				ch = '●'
				style = blackStyle
			case types.White:
				ch = '○'
				style = whiteStyle
			}
			screen.SetContent(startX+col*2, startY+row, ch, nil, style)
		}
	}

	infoY := startY + board.Size + 1
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	drawText(screen, startX, infoY, fmt.Sprintf("%dx%d %s", game.BoardSize, game.BoardSize, game.Rules), infoStyle)
	drawText(screen, startX+18, infoY, fmt.Sprintf("| %d moves", game.MoveCount), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("B: %s", game.PlayerBlack), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("W: %s", game.PlayerWhite), dimStyle)

	infoY++
	result := game.Result
	if result == "" || result == "?" {
		result = "Unfinished"
	}
	if pv.outcome.Terminal() {
		result = fmt.Sprintf("%s  %s", result, pv.outcome.Message())
	}
	drawText(screen, startX, infoY, fmt.Sprintf("Result: %s", result), tcell.StyleDefault.Foreground(Palette.Accent))
	if pv.err != nil {
		infoY++
		drawText(screen, startX, infoY, pv.err.Error(), tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
