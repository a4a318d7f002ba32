package sgf

import (
	"os"
	"strings"
	"testing"

	"renju-local/board"
	"renju-local/types"
)

func TestSgfCoord(t *testing.T) {
	tests := []struct {
		p    types.Pos
		want string
	}{
		{types.Pos{Row: 0, Col: 0}, "aa"},
		{types.Pos{Row: 4, Col: 3}, "de"},
		{board.Center, "hh"},
		{types.Pos{Row: 14, Col: 14}, "oo"},
		{types.Pos{Row: 8, Col: 7}, "hi"},
	}
	for _, tt := range tests {
		if got := sgfCoord(tt.p); got != tt.want {
			t.Errorf("sgfCoord(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		name string
		o    types.Outcome
		want string
	}{
		{"five", types.Outcome{Status: types.StatusWin, Winner: types.Black, Reason: types.ReasonFive}, "B+"},
		{"long chain", types.Outcome{Status: types.StatusWin, Winner: types.White, Reason: types.ReasonLongChain}, "W+"},
		{"resign", types.Outcome{Status: types.StatusWin, Winner: types.White, Reason: types.ReasonResignation}, "W+R"},
		{"claimed foul", types.Outcome{Status: types.StatusForbidden, Winner: types.White, Reason: types.ReasonForbiddenClaimed}, "W+F"},
		{"timeout", types.Outcome{Status: types.StatusTimeoutLose, Winner: types.Black, Reason: types.ReasonTimeoutLimit}, "B+T"},
		{"board full", types.Outcome{Status: types.StatusDraw, Reason: types.ReasonBoardFull}, "0"},
		{"agreed", types.Outcome{Status: types.StatusDraw, Reason: types.ReasonDrawAgreed}, "0"},
		{"ongoing", types.Ongoing(types.ReasonNone), "?"},
	}
	for _, tt := range tests {
		if got := ResultString(tt.o); got != tt.want {
			t.Errorf("%s: ResultString = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestNewGameRecord(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, "0a1b2c3d-aaaa-bbbb-cccc-123456789012", "Renju", "Player", "Computer (medium)")
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	defer rec.Close()

	if !strings.HasSuffix(rec.FilePath, "_0a1b2c3d.sgf") {
		t.Errorf("file name = %q", rec.FilePath)
	}
	content := readFile(t, rec.FilePath)
	for _, want := range []string{
		"(;GM[4]FF[4]",
		"SZ[15]",
		"RU[Renju]",
		"GN[0a1b2c3d-aaaa-bbbb-cccc-123456789012]",
		"PB[Player]",
		"PW[Computer (medium)]",
		"RE[?]",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("header missing %s:\n%s", want, content)
		}
	}
}

func TestRecordMovesUndoAndResult(t *testing.T) {
	rec, err := NewGameRecord(t.TempDir(), "", "Renju", "A", "B")
	if err != nil {
		t.Fatal(err)
	}

	moves := []struct {
		side types.Side
		p    types.Pos
	}{
		{types.Black, board.Center},
		{types.White, types.Pos{Row: 8, Col: 7}},
		{types.Black, types.Pos{Row: 7, Col: 8}},
	}
	for _, m := range moves {
		if err := rec.AddMove(m.side, m.p); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.AddMove(types.White, types.InvalidPos); err == nil {
		t.Error("off-board move accepted")
	}
	if got := readFile(t, rec.FilePath); !strings.Contains(got, ";B[hh];W[hi];B[ih])") {
		t.Errorf("moves not written:\n%s", got)
	}

	if err := rec.UndoMoves(1); err != nil {
		t.Fatal(err)
	}
	if err := rec.UndoMoves(10); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, rec.FilePath); strings.Contains(got, ";B[") {
		t.Errorf("undo left moves:\n%s", got)
	}

	if err := rec.SetResult(types.Outcome{Status: types.StatusWin, Winner: types.White, Reason: types.ReasonResignation}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := rec.AddMove(types.Black, board.Center); err == nil {
		t.Error("AddMove after Close succeeded")
	}
	if got := readFile(t, rec.FilePath); !strings.Contains(got, "RE[W+R]") {
		t.Errorf("result not written:\n%s", got)
	}
}

func TestEscapedNames(t *testing.T) {
	rec, err := NewGameRecord(t.TempDir(), "", "Renju", `odd]name\`, "W")
	if err != nil {
		t.Fatal(err)
	}
	rec.Close()

	info, err := ParseHeader(rec.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if info.PlayerBlack != `odd]name\` || info.PlayerWhite != "W" {
		t.Errorf("players = %q / %q", info.PlayerBlack, info.PlayerWhite)
	}
}
