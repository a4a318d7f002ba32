// Package ui specifies custom controls for tview to play renju in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"renju-local/board"
	"renju-local/config"
	"renju-local/engine"
	"renju-local/notation"
	"renju-local/rules"
	"renju-local/types"
)

// style indexes into BoardUI.styles
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleBoardAlt
	styleBlackAlt
	styleWhiteAlt
	styleCursorFG
	styleLastPlayed
	styleCursorBG
	styleLine
	styleForbidden
)

type BoardUI struct {
	Box       *tview.Box
	Snap      engine.Snapshot
	hint      *tview.TextView
	cfg       *config.Config
	finished  bool
	selRow    int
	selCol    int
	app       *tview.Application
	eng       engine.GameEngine
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool
	showFouls bool
	lastErr   string
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// ToggleFouls switches the forbidden-point overlay for Black.
func (g *BoardUI) ToggleFouls() {
	g.showFouls = !g.showFouls
}

func (g *BoardUI) SelectedTile() (types.Pos, bool) {
	if g.selRow == -1 && g.selCol == -1 {
		return types.InvalidPos, false
	}
	return types.Pos{Row: g.selRow, Col: g.selCol}, true
}

func (g *BoardUI) MoveSelection(dRow, dCol int) {
	if g.finished {
		g.ResetSelection()
		return
	}
	if _, ok := g.SelectedTile(); !ok {
		last, ok := g.Snap.Context.LastPlace()
		if !ok {
			last = board.Center
		}
		g.selRow, g.selCol = last.Row, last.Col
		return
	}
	if g.selRow+dRow < 0 || g.selRow+dRow >= board.Size {
		return
	}
	if g.selCol+dCol < 0 || g.selCol+dCol >= board.Size {
		return
	}
	g.selRow += dRow
	g.selCol += dCol
}

func (g *BoardUI) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

func NewBoardUI(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	ui := &BoardUI{
		Box:       tview.NewBox(),
		Snap:      engine.Snapshot{Board: board.New()},
		hint:      hint,
		app:       app,
		selRow:    -1,
		selCol:    -1,
		showFouls: true,
	}
	ui.SetConfig(c)
	ui.Box.SetDrawFunc(ui.draw)
	return ui
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	b := g.Snap.Board
	theme := g.cfg.Theme
	last, hasLast := g.Snap.Context.LastPlace()
	fouls := g.foulPoints()

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := types.Pos{Row: row, Col: col}
			stone := b.Get(p)

			bg := styleBoard
			if theme.DrawStoneBackground {
				bg = int(stone)
			}
			if (row%2+col%2) == 1 && bg <= styleWhite {
				bg += styleBoardAlt
			}

			var fg tcell.Color
			var drawRune rune
			switch stone {
			case types.Black:
				drawRune = theme.Symbols.BlackStone
				fg = g.styles[styleBlack]
			case types.White:
				drawRune = theme.Symbols.WhiteStone
				fg = g.styles[styleWhite]
			default:
				fg = g.styles[styleLine]
				if theme.UseGridLines {
					drawRune = gridRune(row, col, isStarPoint(row, col))
				} else if isStarPoint(row, col) {
					drawRune = theme.Symbols.StarPoint
				} else {
					drawRune = theme.Symbols.BoardSquare
				}
			}

			switch {
			case row == g.selRow && col == g.selCol:
				if theme.DrawCursorBackground {
					bg = styleCursorBG
				} else if !theme.UseGridLines {
					drawRune = theme.Symbols.Cursor
				}
			case hasLast && p == last:
				if theme.DrawLastPlayedBackground {
					bg = styleLastPlayed
				} else if !theme.UseGridLines {
					drawRune = theme.Symbols.LastPlayed
				}
			case fouls[p]:
				bg = styleForbidden
			}

			style := tcell.StyleDefault.Background(g.styles[bg]).Foreground(fg)
			if theme.UseGridLines && stone == types.None {
				stoneRight := col < board.Size-1 && b.Get(types.Pos{Row: row, Col: col + 1}) != types.None
				drawGridCell(screen, style, drawRune, row, col, x+4, y, stoneRight)
			} else {
				drawStoneCell(screen, style, drawRune, row, col, x+4, y)
			}
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, board.Size*2 + 4, board.Size + 2
}

// foulPoints marks the empty cells where a Black stone would be forbidden.
// It is only computed while a human plays Black.
func (g *BoardUI) foulPoints() map[types.Pos]bool {
	ctx := g.Snap.Context
	if !g.showFouls || g.finished || !g.Snap.Human || ctx.ToMove != types.Black || ctx.Phase == types.PhaseOpening {
		return nil
	}
	return blackFouls(g.Snap.Board)
}

// blackFouls lists the empty points where a black stone would be forbidden.
func blackFouls(b board.Board) map[types.Pos]bool {
	fouls := make(map[types.Pos]bool)
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := types.Pos{Row: row, Col: col}
			if !b.IsEmpty(p) || rules.MakesFive(&b, p, types.Black) {
				continue
			}
			if _, bad := rules.IsForbidden(&b, p); bad {
				fouls[p] = true
			}
		}
	}
	return fouls
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.lastErr = ""
	g.eng = e
	g.ResetSelection()

	// Callbacks arrive from the session's goroutines. Updates queued by a
	// game that has since been closed are dropped.
	e.OnMove(func(snap engine.Snapshot) {
		go g.app.QueueUpdateDraw(func() {
			if g.eng == e {
				g.setSnapshot(snap)
			}
		})
	})

	e.OnGameEnd(func(outcome types.Outcome) {
		go g.app.QueueUpdateDraw(func() {
			if g.eng != e {
				return
			}
			g.finished = true
			g.setSnapshot(e.Snapshot())
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.setSnapshot(e.Snapshot())
	return nil
}

func (g *BoardUI) setSnapshot(snap engine.Snapshot) {
	g.Snap = snap
	if snap.Context.Phase == types.PhaseFinished {
		g.finished = true
	}
	g.refreshHint()
}

// Submit sends an action to the engine and reports any rejection in the hint.
func (g *BoardUI) Submit(a types.Action) {
	if g.finished || g.eng == nil {
		return
	}
	err := g.eng.Submit(a)
	switch {
	case err == nil:
		g.lastErr = ""
	case errors.Is(err, engine.ErrNotYourTurn):
		g.lastErr = "Wait for your turn"
	default:
		g.lastErr = fmt.Sprintf("Invalid Action: %v", err)
	}
	g.refreshHint()
}

// PlaceSelected plays a stone at the cursor.
func (g *BoardUI) PlaceSelected() {
	if p, ok := g.SelectedTile(); ok {
		g.Submit(types.Place(p))
	}
}

// Command parses a typed command such as "H8" or "resign" and submits it.
func (g *BoardUI) Command(text string) {
	g.Submit(notation.ParseCommand(text))
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		styleBoard:      tcell.PaletteColor(c.Theme.Colors.BoardColor),
		styleBlack:      tcell.PaletteColor(c.Theme.Colors.BlackColor),
		styleWhite:      tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		styleBoardAlt:   tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),
		styleBlackAlt:   tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),
		styleWhiteAlt:   tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),
		styleCursorFG:   tcell.PaletteColor(c.Theme.Colors.CursorColorFG),
		styleLastPlayed: tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
		styleCursorBG:   tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		styleLine:       tcell.PaletteColor(c.Theme.Colors.LineColor),
		styleForbidden:  tcell.PaletteColor(c.Theme.Colors.ForbiddenColorBG),
	}
	g.cfg = c
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetSnapshot(g.Snap)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string
	if g.finished {
		statusLine = "───────── Game Complete ─────────\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.Snap.Outcome.Message())
		controlsLine = "  q · return to menu"
	} else {
		if g.lastErr != "" {
			statusLine = fmt.Sprintf("  ! %s\n", g.lastErr)
		} else if g.Snap.Message != "" {
			statusLine = fmt.Sprintf("  %s\n", g.Snap.Message)
		}

		side := g.Snap.Context.ToMove
		if g.eng != nil && g.eng.IsMyTurn() {
			stone := "●"
			if side == types.White {
				stone = "○"
			}
			turnLine = fmt.Sprintf("  %s Your move (%s)\n", stone, side)
		} else {
			turnLine = fmt.Sprintf("  ◌ %s is thinking...\n", side)
		}
		controlsLine = "  hjkl/↑↓←→ move  ⏎ play  : command  c claim  d draw  a/r accept/reject  u undo  R resign  x fouls  f focus  q quit"
	}
	g.hint.SetText(statusLine + turnLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// drawStoneCell draws a stone cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, row, col, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	s.SetContent(l+col*2+1, t+row, ' ', nil, c)
}

// drawGridCell draws an empty intersection and the line to its right.
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, row, col, l, t int, stoneRight bool) {
	s.SetContent(l+col*2, t+row, r, nil, c)

	rightConn := '─'
	if col == board.Size-1 || stoneRight {
		rightConn = ' '
	}
	s.SetContent(l+col*2+1, t+row, rightConn, nil, c)
}

// gridRune returns the box-drawing character for an empty intersection.
func gridRune(row, col int, star bool) rune {
	if star {
		return '◦'
	}

	isTop := row == 0
	isBottom := row == board.Size-1
	isLeft := col == 0
	isRight := col == board.Size-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

var starPoints = map[types.Pos]bool{
	{Row: 3, Col: 3}:   true,
	{Row: 3, Col: 11}:  true,
	{Row: 7, Col: 7}:   true,
	{Row: 11, Col: 3}:  true,
	{Row: 11, Col: 11}: true,
}

func isStarPoint(row, col int) bool {
	return starPoints[types.Pos{Row: row, Col: col}]
}

// drawCoordinates labels columns A-O below the board and rows 1-15 from the top.
func (g *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	hCoord := int('A')
	if g.cfg.Theme.FullWidthLetters {
		hCoord = int('Ａ')
	}

	last, hasLast := g.Snap.Context.LastPlace()
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(g.styles[styleLastPlayed])

	for col := 0; col < board.Size; col++ {
		st := style
		if col == g.selCol {
			st = highlight
		} else if hasLast && col == last.Col {
			st = lpHighlight
		}
		s.SetContent(x+4+col*2, y+board.Size+1, rune(hCoord+col), nil, st)
		s.SetContent(x+4+col*2+1, y+board.Size+1, ' ', nil, st)
	}

	for row := 0; row < board.Size; row++ {
		st := style
		if row == g.selRow {
			st = highlight
		} else if hasLast && row == last.Row {
			st = lpHighlight
		}
		label := fmt.Sprintf("%2d", row+1)
		s.SetContent(x+1, y+row, rune(label[0]), nil, st)
		s.SetContent(x+2, y+row, rune(label[1]), nil, st)
	}
}
