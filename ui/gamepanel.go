package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"renju-local/board"
	"renju-local/engine"
	"renju-local/notation"
	"renju-local/rules"
	"renju-local/types"
)

// GameInfoPanel displays game state and move history alongside the board.
type GameInfoPanel struct {
	box      *tview.TextView
	snap     *engine.Snapshot
	ruleName string
	players  [2]string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGame sets the header shown above the game state.
func (p *GameInfoPanel) SetGame(ruleName, black, white string) {
	p.ruleName = ruleName
	p.players = [2]string{black, white}
	p.refresh()
}

// SetSnapshot updates the panel with current game state.
func (p *GameInfoPanel) SetSnapshot(snap engine.Snapshot) {
	p.snap = &snap
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	if p.snap == nil {
		p.box.SetText("")
		return
	}
	ctx := p.snap.Context

	var b strings.Builder
	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	if p.ruleName != "" {
		fmt.Fprintf(&b, "[dimgray]%s[-]\n", p.ruleName)
	}
	if p.players[0] != "" {
		fmt.Fprintf(&b, "[white]B:[-] %s\n[white]W:[-] %s\n", p.players[0], p.players[1])
	}
	fmt.Fprintf(&b, "[white]Turn:[-:-:-] %d  [white]Phase:[-:-:-] %s\n", ctx.TurnIndex+1, ctx.Phase)
	fmt.Fprintf(&b, "[white]To move:[-:-:-] %s\n", ctx.ToMove)
	fmt.Fprintf(&b, "[white]Timeouts:[-:-:-] B %d/%d  W %d/%d\n",
		ctx.BlackWarnings, rules.MaxTimeoutWarnings, ctx.WhiteWarnings, rules.MaxTimeoutWarnings)
	if ctx.TotalGameDuration > 0 {
		fmt.Fprintf(&b, "[white]Remaining:[-:-:-] %s\n", ctx.Remaining().Truncate(time.Second))
	}
	if ctx.DrawOfferBy != types.None {
		fmt.Fprintf(&b, "[yellow]%s offers a draw[-]\n", ctx.DrawOfferBy)
	}
	if ctx.PendingForbidden {
		b.WriteString("[red]Foul! White may claim[-]\n")
	}

	var moves []types.HistoryEntry
	for _, h := range ctx.History {
		if h.Action.Kind == types.ActionPlace {
			moves = append(moves, h)
		}
	}
	if len(moves) > 0 {
		b.WriteString("\n[white::b]Moves[-:-:-]\n")
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}
		for i := start; i < len(moves); i++ {
			m := moves[i]
			colorStr := "[white]B[-]"
			if m.Side == types.White {
				colorStr = "[dimgray]W[-]"
			}
			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}
			fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, notation.FormatPos(m.Action.Pos))
		}
		if start > 0 {
			fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(b.String())
}

// CreateGameLayout creates the main game layout with board, side panel,
// command line and hint.
func CreateGameLayout(view *BoardUI, hint *tview.TextView, command *tview.InputField) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, view, hint, command)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout.
func RebuildNormalLayout(gameFrame *tview.Flex, view *BoardUI, hint *tview.TextView, command *tview.InputField) {
	gameFrame.Clear()

	if view.infoPanel == nil {
		view.infoPanel = NewGameInfoPanel()
	}
	view.infoPanel.SetSnapshot(view.Snap)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(view.Box, 0, 1, true)
	boardRow.AddItem(view.infoPanel.Box(), 30, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(command, 1, 0, false)
	gameFrame.AddItem(hint, 5, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, view *BoardUI) {
	gameFrame.Clear()

	boardWidth := board.Size*2 + 4 // 2 chars per cell + coordinates
	boardHeight := board.Size + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(view.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

// InfoPanel returns the side panel, creating it on first use.
func (g *BoardUI) InfoPanel() *GameInfoPanel {
	if g.infoPanel == nil {
		g.infoPanel = NewGameInfoPanel()
	}
	return g.infoPanel
}
