package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"renju-local/board"
	"renju-local/config"
	"renju-local/engine"
	"renju-local/types"
)

func TestGridRune(t *testing.T) {
	tests := []struct {
		row, col int
		star     bool
		want     rune
	}{
		{0, 0, false, '┌'},
		{0, 14, false, '┐'},
		{14, 0, false, '└'},
		{14, 14, false, '┘'},
		{0, 5, false, '┬'},
		{14, 5, false, '┴'},
		{5, 0, false, '├'},
		{5, 14, false, '┤'},
		{5, 5, false, '┼'},
		{7, 7, true, '◦'},
	}
	for _, tt := range tests {
		if got := gridRune(tt.row, tt.col, tt.star); got != tt.want {
			t.Errorf("gridRune(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestStarPoints(t *testing.T) {
	n := 0
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if isStarPoint(row, col) {
				n++
			}
		}
	}
	if n != 5 || !isStarPoint(board.Center.Row, board.Center.Col) {
		t.Fatalf("star points = %d", n)
	}
}

func TestMoveSelection(t *testing.T) {
	g := &BoardUI{Snap: engine.Snapshot{Board: board.New()}, selRow: -1, selCol: -1}
	g.MoveSelection(1, 0)
	if p, ok := g.SelectedTile(); !ok || p != board.Center {
		t.Fatalf("first move selects %v, want centre", p)
	}
	for i := 0; i < 20; i++ {
		g.MoveSelection(0, 1)
	}
	if p, _ := g.SelectedTile(); p.Col != board.Size-1 {
		t.Fatalf("selection left the board: %v", p)
	}
	g.ResetSelection()
	if _, ok := g.SelectedTile(); ok {
		t.Fatal("reset kept selection")
	}
}

func TestFoulPoints(t *testing.T) {
	b := board.New()
	for _, p := range []types.Pos{{Row: 7, Col: 7}, {Row: 7, Col: 8}, {Row: 8, Col: 9}, {Row: 9, Col: 9}} {
		b.Set(p, types.Black)
	}
	b.Set(types.Pos{Row: 0, Col: 0}, types.White)
	snap := engine.Snapshot{
		Board:   b,
		Context: types.GameContext{ToMove: types.Black, Phase: types.PhaseNormal},
		Human:   true,
	}
	g := &BoardUI{Snap: snap, showFouls: true}

	fouls := g.foulPoints()
	if !fouls[types.Pos{Row: 7, Col: 9}] {
		t.Errorf("double three at J8 not marked: %v", fouls)
	}
	if len(fouls) == 0 || fouls[types.Pos{Row: 0, Col: 14}] {
		t.Errorf("unexpected fouls: %v", fouls)
	}

	g.Snap.Context.ToMove = types.White
	if g.foulPoints() != nil {
		t.Error("fouls shown on White's turn")
	}
	g.Snap.Context.ToMove = types.Black
	g.showFouls = false
	if g.foulPoints() != nil {
		t.Error("fouls shown while disabled")
	}
}

func TestGameSetupConfig(t *testing.T) {
	initial := engine.GameConfig{Mode: engine.AIVsHuman, Difficulty: engine.Hard, TurnLimit: 30 * time.Second}
	setup := NewGameSetup(initial, SetupActions{Start: func(engine.GameConfig) {}})
	if setup.Config() != initial {
		t.Fatalf("config = %+v", setup.Config())
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"15", 15 * time.Second},
		{" 0 ", 0},
		{"", 0},
		{"-3", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseSeconds(tt.in); got != tt.want {
			t.Errorf("parseSeconds(%q) = %v", tt.in, got)
		}
	}
	if seconds(90*time.Second) != "90" {
		t.Error("seconds")
	}
}

func TestInfoPanelShowsState(t *testing.T) {
	p := NewGameInfoPanel()
	p.SetGame("Gomoku (Renju-like)", "Player", "AI (medium)")

	ctx := types.NewGameContext(time.Minute)
	ctx.History = []types.HistoryEntry{{Side: types.Black, Action: types.Place(board.Center)}}
	ctx.DrawOfferBy = types.White
	p.SetSnapshot(engine.Snapshot{Board: board.New(), Context: ctx})

	text := p.Box().GetText(true)
	for _, want := range []string{"Player", "AI (medium)", "White offers a draw", "H8", "Remaining"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel missing %q:\n%s", want, text)
		}
	}
}

func TestColorConfigApply(t *testing.T) {
	cfg := config.DefaultConfig
	saves := 0
	var done error
	cc := NewColorConfig(&cfg, func(err error) { done = err })
	cc.save = func() error {
		saves++
		return nil
	}

	if !cc.fouls[types.Pos{Row: 7, Col: 9}] {
		t.Errorf("preview has no foul point at the double three: %v", cc.fouls)
	}

	cc.ToggleMode()
	cc.ToggleMode()
	if cc.target != targetForbidden {
		t.Fatalf("target = %v after two toggles", cc.target)
	}
	cc.choose(1)
	cc.Apply()
	if saves != 1 || done != nil {
		t.Fatalf("saves = %d, done = %v", saves, done)
	}
	if cfg.Theme.Colors.ForbiddenColorBG != forbiddenColors[1].code {
		t.Errorf("forbidden bg = %d", cfg.Theme.Colors.ForbiddenColorBG)
	}
	if cfg.Theme.Colors.BoardColor != config.DefaultTheme.Colors.BoardColor {
		t.Errorf("board color changed to %d", cfg.Theme.Colors.BoardColor)
	}

	g := &BoardUI{}
	g.SetConfig(&cfg)
	if g.styles[styleForbidden] != tcell.PaletteColor(forbiddenColors[1].code) {
		t.Error("board view did not pick up the new forbidden color")
	}

	cc.ToggleMode()
	if cc.target != targetBoard {
		t.Fatalf("target = %v, want board after wrapping", cc.target)
	}
	cc.choose(0)
	cc.Cancel()
	if cc.picked[targetBoard] != cfg.Theme.Colors.BoardColor {
		t.Error("cancel kept an unsaved pick")
	}

	failed := errors.New("disk full")
	cc.save = func() error { return failed }
	cc.Apply()
	if !errors.Is(done, failed) {
		t.Errorf("save error not reported: %v", done)
	}
}
