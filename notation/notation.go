// Package notation converts between board positions and typed commands.
package notation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"renju-local/board"
	"renju-local/types"
)

// Coordinate system:
// - Columns: A-O, left to right
// - Rows: 1-15, top to bottom
// - Example: H8 is the centre, (7, 7)
//
// The row may also come first ("8H").

// FormatPos converts a board position to notation. Off-board positions
// render as "--".
func FormatPos(p types.Pos) string {
	if p.Row < 0 || p.Row >= board.Size || p.Col < 0 || p.Col >= board.Size {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'A'+rune(p.Col), p.Row+1)
}

// ParsePos converts "H8" or "8H" (any case, surrounding space ignored) to a position.
func ParsePos(s string) (types.Pos, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return types.InvalidPos, fmt.Errorf("invalid coordinate: %q", s)
	}

	var letter byte
	var digits string
	switch {
	case isLetter(s[0]):
		letter, digits = s[0], s[1:]
	case isLetter(s[len(s)-1]):
		letter, digits = s[len(s)-1], s[:len(s)-1]
	default:
		return types.InvalidPos, fmt.Errorf("missing column letter: %q", s)
	}

	row, err := strconv.Atoi(digits)
	if err != nil {
		return types.InvalidPos, fmt.Errorf("invalid row in coordinate: %q", s)
	}

	p := types.Pos{Row: row - 1, Col: int(letter - 'A')}
	if p.Row < 0 || p.Row >= board.Size || p.Col >= board.Size {
		return types.InvalidPos, fmt.Errorf("coordinate out of bounds: %q", s)
	}
	return p, nil
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

var keywords = map[string]types.ActionKind{
	"resign":  types.ActionResign,
	"quit":    types.ActionResign,
	"q":       types.ActionResign,
	"claim":   types.ActionClaimForbidden,
	"draw":    types.ActionOfferDraw,
	"offer":   types.ActionOfferDraw,
	"accept":  types.ActionAcceptDraw,
	"reject":  types.ActionRejectDraw,
	"decline": types.ActionRejectDraw,
	"undo":    types.ActionUndo,
}

// ParseCommand turns a line of input into an action. Anything that is
// neither a keyword nor a coordinate becomes a placement at InvalidPos so
// the rule engine rejects it as out of bounds.
func ParseCommand(input string) types.Action {
	word := strings.ToLower(strings.TrimFunc(input, unicode.IsSpace))
	if kind, ok := keywords[word]; ok {
		return types.NewAction(kind)
	}
	p, err := ParsePos(word)
	if err != nil {
		return types.Place(types.InvalidPos)
	}
	return types.Place(p)
}

// FormatAction renders an action for move lists and logs.
func FormatAction(side types.Side, a types.Action) string {
	if p, ok := a.Position(); ok {
		return fmt.Sprintf("%s %s", side, FormatPos(p))
	}
	return fmt.Sprintf("%s %s", side, a.Kind)
}
