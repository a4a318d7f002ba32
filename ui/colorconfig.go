package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"renju-local/board"
	"renju-local/config"
	"renju-local/types"
)

type namedColor struct {
	code int
	name string
}

// Common board colors to choose from (warm wood-like tones)
var boardColors = []namedColor{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{228, "Light Gold"},
	{222, "Gold"},
	{220, "Bright Yellow"},
	{214, "Orange Gold"},
	{208, "Dark Orange"},
	{180, "Tan"},
	{179, "Light Brown"},
	{172, "Brown"},
	{136, "Dark Brown"},
	{94, "Saddle Brown"},
	{252, "Light Gray"},
	{250, "Gray"},
	{248, "Medium Gray"},
	{244, "Dark Gray"},
	{188, "Light Beige"},
	{181, "Dusty Rose"},
	{223, "Peach"},
	{216, "Salmon"},
}

// Line colors (darker tones that contrast with board)
var lineColors = []namedColor{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{136, "Dark Brown"},
	{88, "Dark Red"},
	{52, "Dark Maroon"},
	{22, "Dark Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{232, "Black"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{244, "Medium Gray"},
	{16, "True Black"},
}

// Background of the points Black may not play.
var forbiddenColors = []namedColor{
	{1, "Maroon"},
	{9, "Red"},
	{124, "Dark Red"},
	{160, "Crimson"},
	{196, "Bright Red"},
	{167, "Indian Red"},
	{203, "Coral"},
	{204, "Pink"},
	{133, "Orchid"},
	{3, "Olive"},
}

// colorTarget is the theme entry being edited.
type colorTarget int

const (
	targetBoard colorTarget = iota
	targetLine
	targetForbidden
	targetCount
)

func (t colorTarget) title() string {
	switch t {
	case targetLine:
		return " Line Color (Tab: next) "
	case targetForbidden:
		return " Forbidden Point Color (Tab: next) "
	}
	return " Board Color (Tab: next) "
}

func (t colorTarget) choices() []namedColor {
	switch t {
	case targetLine:
		return lineColors
	case targetForbidden:
		return forbiddenColors
	}
	return boardColors
}

// Sample position for the preview: Black's double three leaves a foul point.
var previewStones = map[types.Pos]types.Side{
	{Row: 7, Col: 7}: types.Black,
	{Row: 7, Col: 8}: types.Black,
	{Row: 8, Col: 9}: types.Black,
	{Row: 9, Col: 9}: types.Black,
	{Row: 8, Col: 7}: types.White,
	{Row: 6, Col: 8}: types.White,
	{Row: 9, Col: 6}: types.White,
}

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func(error)
	save      func() error

	board  board.Board
	fouls  map[types.Pos]bool
	target colorTarget
	picked [targetCount]int
}

// NewColorConfig creates a new color configuration screen. onDone gets the
// result of saving the config file.
func NewColorConfig(cfg *config.Config, onDone func(error)) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:    cfg,
		onDone: onDone,
		save:   cfg.Save,
		board:  board.New(),
	}
	cc.resetPicks()

	for p, side := range previewStones {
		cc.board.Set(p, side)
	}
	cc.fouls = blackFouls(cc.board)

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.choose(index)
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.choose(index)
		cc.Apply()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 36, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) resetPicks() {
	cc.picked[targetBoard] = cc.cfg.Theme.Colors.BoardColor
	cc.picked[targetLine] = cc.cfg.Theme.Colors.LineColor
	cc.picked[targetForbidden] = cc.cfg.Theme.Colors.ForbiddenColorBG
}

// choose previews the index-th color of the current list.
func (cc *ColorConfigUI) choose(index int) {
	choices := cc.target.choices()
	if index >= 0 && index < len(choices) {
		cc.picked[cc.target] = choices[index].code
	}
}

// Apply stores all picked colors in the config and saves it.
func (cc *ColorConfigUI) Apply() {
	colors := &cc.cfg.Theme.Colors
	colors.BoardColor = cc.picked[targetBoard]
	colors.BoardColorAlt = cc.picked[targetBoard]
	colors.LineColor = cc.picked[targetLine]
	colors.ForbiddenColorBG = cc.picked[targetForbidden]
	err := cc.save()
	if cc.onDone != nil {
		cc.onDone(err)
	}
}

// Cancel drops unsaved picks.
func (cc *ColorConfigUI) Cancel() {
	cc.resetPicks()
	cc.target = targetBoard
	cc.populateColorList()
}

// populateColorList fills the list with the colors of the current target.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()
	cc.colorList.SetTitle(cc.target.title())

	current := cc.picked[cc.target]
	choices := cc.target.choices()
	for i, c := range choices {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range choices {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
	cc.picked[cc.target] = current
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	boardColor := tcell.PaletteColor(cc.picked[targetBoard])
	lineStyle := tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.picked[targetLine]))
	blackStyle := tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.BlackColor))
	whiteStyle := tcell.StyleDefault.Background(boardColor).Foreground(tcell.PaletteColor(cc.cfg.Theme.Colors.WhiteColor))
	foulStyle := lineStyle.Background(tcell.PaletteColor(cc.picked[targetForbidden]))

	startX := x + 2
	startY := y + 1
	if width < board.Size*2+4 || height < board.Size+4 {
		return x, y, width, height
	}

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := types.Pos{Row: row, Col: col}
			switch cc.board.Get(p) {
			case types.Black:
				drawStoneCell(screen, blackStyle, cc.cfg.Theme.Symbols.BlackStone, row, col, startX, startY)
				continue
			case types.White:
				drawStoneCell(screen, whiteStyle, cc.cfg.Theme.Symbols.WhiteStone, row, col, startX, startY)
				continue
			}
			style := lineStyle
			if cc.fouls[p] {
				style = foulStyle
			}
			stoneRight := col+1 < board.Size && !cc.board.IsEmpty(types.Pos{Row: row, Col: col + 1})
			drawGridCell(screen, style, gridRune(row, col, isStarPoint(row, col)), row, col, startX, startY, stoneRight)
		}
	}

	info := fmt.Sprintf("Board: %d  Line: %d  Forbidden: %d",
		cc.picked[targetBoard], cc.picked[targetLine], cc.picked[targetForbidden])
	drawText(screen, startX, startY+board.Size+1, info, tcell.StyleDefault.Foreground(Palette.Hint))

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode moves on to the next theme entry.
func (cc *ColorConfigUI) ToggleMode() {
	cc.target = (cc.target + 1) % targetCount
	cc.populateColorList()
}
