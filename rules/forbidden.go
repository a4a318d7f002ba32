package rules

import (
	"renju-local/board"
	"renju-local/types"
)

// IsForbidden checks a Black stone at p (placed or hypothetical) against the
// foul patterns. The first match wins: overline, then three-three, then
// four-four. Callers must test for an exact five first; a five is never a foul.
func IsForbidden(b *board.Board, p types.Pos) (types.ForbiddenKind, bool) {
	if checkOverline(b, p) {
		return types.Overline, true
	}
	if checkThreeThree(b, p) {
		return types.ThreeThree, true
	}
	if checkFourFour(b, p) {
		return types.FourFour, true
	}
	return types.NotForbidden, false
}

func checkOverline(b *board.Board, p types.Pos) bool {
	return MakesLongChain(b, p, types.Black)
}

func checkThreeThree(b *board.Board, p types.Pos) bool {
	return countAxes(b, p, IsOpenThree) >= 2
}

func checkFourFour(b *board.Board, p types.Pos) bool {
	return countAxes(b, p, IsFour) >= 2
}

// countAxes counts the axes through p whose Black window satisfies match.
func countAxes(b *board.Board, p types.Pos, match func(Line) bool) int {
	n := 0
	for _, axis := range Axes {
		if match(Window(b, p, axis, types.Black)) {
			n++
		}
	}
	return n
}
