package ai

import (
	"renju-local/board"
	"renju-local/rules"
	"renju-local/types"
)

// Run weights. A run is scored once per stone it contains, so longer runs
// also weigh more through repetition.
const (
	ScoreFive    = 10_000_000
	ScoreOpen4   = 100_000
	ScoreClosed4 = 10_000
	ScoreOpen3   = 5_000
	ScoreClosed3 = 100
	ScoreOpen2   = 10
	ScoreClosed2 = 1
)

// runScore maps a contiguous run and the number of empty cells capping it
// (0, 1 or 2) to a weight.
func runScore(length, open int) int {
	if length >= 5 {
		return ScoreFive
	}
	if open == 0 {
		return 0
	}
	switch length {
	case 4:
		if open == 2 {
			return ScoreOpen4
		}
		return ScoreClosed4
	case 3:
		if open == 2 {
			return ScoreOpen3
		}
		return ScoreClosed3
	case 2:
		if open == 2 {
			return ScoreOpen2
		}
		return ScoreClosed2
	}
	return 0
}

// runAt measures the run of side through p along axis and how many of its
// two ends are empty.
func runAt(b *board.Board, p types.Pos, axis rules.Axis, side types.Side) (length, open int) {
	fwd := b.CountConsecutive(p, axis.DR, axis.DC, side)
	back := b.CountConsecutive(p, -axis.DR, -axis.DC, side)
	if b.IsEmpty(p.Offset(axis.DR, axis.DC, fwd+1)) {
		open++
	}
	if b.IsEmpty(p.Offset(-axis.DR, -axis.DC, back+1)) {
		open++
	}
	return 1 + fwd + back, open
}

// sideScore sums run weights over every stone of side and every axis.
func sideScore(b *board.Board, side types.Side) int {
	total := 0
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			p := types.Pos{Row: r, Col: c}
			if b.Get(p) != side {
				continue
			}
			for _, axis := range rules.Axes {
				total += runScore(runAt(b, p, axis, side))
			}
		}
	}
	return total
}

// EvaluateBoard scores the position from side's point of view: side's run
// weights minus the opponent's.
func EvaluateBoard(b *board.Board, side types.Side) int {
	return sideScore(b, side) - sideScore(b, side.Opponent())
}

// moveHeuristic is a cheap local estimate of how much a stone at p matters
// to either side. It only orders moves inside the tree.
func moveHeuristic(b *board.Board, p types.Pos, toMove types.Side) int {
	score := 0
	for _, axis := range rules.Axes {
		score += runScore(runAt(b, p, axis, toMove))
		score += runScore(runAt(b, p, axis, toMove.Opponent())) / 2
	}
	return score
}
