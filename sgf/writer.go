// Package sgf writes and reads Gomoku/Renju game records in SGF FF[4] (GM[4]).
package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"renju-local/board"
	"renju-local/types"
)

// GameRecord tracks a game in progress and rewrites its SGF file after
// every change, so an interrupted game is still readable.
type GameRecord struct {
	FilePath    string
	GameID      string
	BoardSize   int
	Rules       string
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	moves       []string // ";B[hh]", ";W[hi]", ...
	file        *os.File
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
func NewGameRecord(dir, gameID, rules, black, white string) (*GameRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	filename := fmt.Sprintf("%s_%dx%d.sgf", now.Format("2006-01-02_150405"), board.Size, board.Size)
	if len(gameID) >= 8 {
		filename = fmt.Sprintf("%s_%s.sgf", now.Format("2006-01-02_150405"), gameID[:8])
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sgf file: %w", err)
	}

	rec := &GameRecord{
		FilePath:    path,
		GameID:      gameID,
		BoardSize:   board.Size,
		Rules:       rules,
		PlayerBlack: black,
		PlayerWhite: white,
		Date:        now.Format("2006-01-02"),
		Result:      "?",
		file:        f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}
	return rec, nil
}

// sgfCoord converts a board position to an SGF letter pair, column first.
// (0,0) -> "aa", row 7 col 7 -> "hh".
func sgfCoord(p types.Pos) string {
	return string(rune('a'+p.Col)) + string(rune('a'+p.Row))
}

func colorChar(side types.Side) string {
	if side == types.White {
		return "W"
	}
	return "B"
}

// AddMove appends a placement to the record.
func (r *GameRecord) AddMove(side types.Side, p types.Pos) error {
	if p.Row < 0 || p.Row >= r.BoardSize || p.Col < 0 || p.Col >= r.BoardSize {
		return fmt.Errorf("move %v outside %dx%d board", p, r.BoardSize, r.BoardSize)
	}
	r.moves = append(r.moves, fmt.Sprintf(";%s[%s]", colorChar(side), sgfCoord(p)))
	return r.flush()
}

// UndoMoves removes the last n moves from the record.
func (r *GameRecord) UndoMoves(n int) error {
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	return r.flush()
}

// SetResult sets the RE property from the final outcome.
func (r *GameRecord) SetResult(o types.Outcome) error {
	r.Result = ResultString(o)
	return r.flush()
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.flush()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	r.file = nil
	return err
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder

	// Root node
	b.WriteString("(;GM[4]FF[4]CA[UTF-8]")
	b.WriteString("AP[renju-local:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", r.BoardSize))
	b.WriteString(fmt.Sprintf("RU[%s]", escapeText(r.Rules)))
	if r.GameID != "" {
		b.WriteString(fmt.Sprintf("GN[%s]", escapeText(r.GameID)))
	}
	b.WriteString(fmt.Sprintf("PB[%s]", escapeText(r.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escapeText(r.PlayerWhite)))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	for _, m := range r.moves {
		b.WriteString(m)
	}
	b.WriteString(")\n")

	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// ResultString renders an outcome as an SGF RE value.
func ResultString(o types.Outcome) string {
	winner := colorChar(o.Winner)
	switch o.Status {
	case types.StatusWin:
		if o.Reason == types.ReasonResignation {
			return winner + "+R"
		}
		return winner + "+"
	case types.StatusForbidden:
		return "W+F"
	case types.StatusTimeoutLose:
		return winner + "+T"
	case types.StatusDraw:
		return "0"
	}
	return "?"
}

// escapeText escapes the characters SGF treats specially inside values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}
